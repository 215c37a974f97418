package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"pricebook/core/pricebook"
)

// decodeJSON streams tokens so object key order survives and numbers stay exact
func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	doc, err := jsonValue(dec)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return doc, nil
}

func jsonValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := pricebook.NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key at offset %d is not a string", dec.InputOffset())
				}
				val, err := jsonValue(dec)
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				val, err := jsonValue(dec)
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q at offset %d", v, dec.InputOffset())
	case json.Number:
		return decimal.NewFromString(v.String())
	default:
		// string, bool or nil
		return v, nil
	}
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
