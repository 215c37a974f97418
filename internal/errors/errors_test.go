package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "[NOT_FOUND] pricebook not found: prices.json", NotFound("pricebook", "prices.json").Error())

	err := IO("prices.json", fs.ErrNotExist)
	assert.Equal(t, "[IO_ERROR] failed to access prices.json: file does not exist", err.Error())
	assert.Equal(t, "prices.json", err.Context["path"])
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
}

func TestTypeOfFollowsWrapping(t *testing.T) {
	inner := Parsing("book.yaml", fmt.Errorf("line 3: bad indent"))
	wrapped := fmt.Errorf("loading: %w", inner)

	typ, ok := TypeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, TypeParsing, typ)
	assert.True(t, IsType(wrapped, TypeParsing))
	assert.False(t, IsType(wrapped, TypeConfig))
	assert.False(t, IsType(fmt.Errorf("plain"), TypeParsing))
	assert.True(t, inner.Is(TypeParsing))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		want Type
	}{
		{Input("bad selection", nil), TypeInput},
		{Config("bad config", nil), TypeConfig},
		{NotSupported(".xlsx"), TypeNotSupported},
		{Internal("boom", nil), TypeInternal},
		{Newf(TypeInput, "field %s", "level"), TypeInput},
		{Wrapf(TypeIO, nil, "file %d", 1), TypeIO},
		{New(TypeNotFound, "x"), TypeNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Type, tt.err.Error())
	}
}
