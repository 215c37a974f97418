package loader

import (
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"pricebook/core/pricebook"
)

// HCL pricebooks use labelled blocks:
//
//	region "EMEA" {
//	  country "UK" {
//	    supplier     = "Northwind"
//	    L1           = [{ withBackfill = 500, withoutBackfill = 400 }]
//	    fullDayVisit = [{ L1 = 100, L2 = 150 }]
//	  }
//	}
const (
	hclRegionBlock  = "region"
	hclCountryBlock = "country"
)

func decodeHCL(r io.Reader, filename string) (*pricebook.Table, []pricebook.Issue, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}

	var issues []pricebook.Issue
	issue := func(rng hcl.Range, format string, args ...interface{}) {
		issues = append(issues, pricebook.Issue{Path: rng.String(), Message: fmt.Sprintf(format, args...)})
	}

	for _, attr := range attributesInOrder(body) {
		issue(attr.SrcRange, "top-level attribute %q ignored", attr.Name)
	}

	regions := []any{}
	for _, rb := range body.Blocks {
		if rb.Type != hclRegionBlock || len(rb.Labels) != 1 {
			issue(rb.DefRange(), "expected a region block with one label, got %s", rb.Type)
			continue
		}
		region := pricebook.NewObject()
		region.Set("region", rb.Labels[0])

		for _, attr := range attributesInOrder(rb.Body) {
			issue(attr.SrcRange, "attribute %q ignored in region %q", attr.Name, rb.Labels[0])
		}

		countries := []any{}
		for _, cb := range rb.Body.Blocks {
			if cb.Type != hclCountryBlock || len(cb.Labels) != 1 {
				issue(cb.DefRange(), "expected a country block with one label, got %s", cb.Type)
				continue
			}
			country := pricebook.NewObject()
			country.Set(pricebook.KeyCountry, cb.Labels[0])

			for _, attr := range attributesInOrder(cb.Body) {
				v, err := hclValue(attr.Expr)
				if err != nil {
					issue(attr.SrcRange, "%s: %v", attr.Name, err)
					continue
				}
				country.Set(attr.Name, v)
			}
			countries = append(countries, country)
		}
		region.Set("countries", countries)
		regions = append(regions, region)
	}

	table, built := pricebook.Build(regions)
	return table, append(issues, built...), nil
}

func attributesInOrder(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}

// hclValue converts an expression to the document model.
// Tuple and object constructors are walked directly to keep source order.
func hclValue(expr hclsyntax.Expression) (any, error) {
	switch e := expr.(type) {
	case *hclsyntax.TupleConsExpr:
		list := make([]any, 0, len(e.Exprs))
		for _, item := range e.Exprs {
			v, err := hclValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case *hclsyntax.ObjectConsExpr:
		obj := pricebook.NewObject()
		for _, item := range e.Items {
			kv, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}
			key, err := ctyValue(kv)
			if err != nil {
				return nil, err
			}
			ks, ok := key.(string)
			if !ok {
				if d, isNum := key.(decimal.Decimal); isNum {
					ks = d.String()
				} else {
					return nil, fmt.Errorf("object key must be a string")
				}
			}
			v, err := hclValue(item.ValueExpr)
			if err != nil {
				return nil, err
			}
			obj.Set(ks, v)
		}
		return obj, nil
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	return ctyValue(v)
}

func ctyValue(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Bool:
		return v.True(), nil
	case t == cty.Number:
		return decimal.NewFromString(v.AsBigFloat().Text('f', -1))
	case t.IsListType() || t.IsTupleType() || t.IsSetType():
		list := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := ctyValue(ev)
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
		return list, nil
	case t.IsMapType() || t.IsObjectType():
		obj := pricebook.NewObject()
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			item, err := ctyValue(ev)
			if err != nil {
				return nil, err
			}
			obj.Set(k.AsString(), item)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", t.FriendlyName())
}
