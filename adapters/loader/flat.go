package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jszwec/csvutil"

	"pricebook/core/pricebook"
)

// flatRecord is one line of a flat price sheet.
// CSV headers and HTML table headers map onto the csv tags.
type flatRecord struct {
	Region       string `csv:"region"`
	Country      string `csv:"country"`
	Supplier     string `csv:"supplier,omitempty"`
	Currency     string `csv:"currency,omitempty"`
	PaymentTerms string `csv:"payment_terms,omitempty"`
	Category     string `csv:"category"`
	Level        string `csv:"level"`
	Modifier     string `csv:"modifier,omitempty"`
	Price        string `csv:"price"`
}

func (r flatRecord) toRow() (pricebook.FlatRow, error) {
	price, err := pricebook.ToDecimal(strings.TrimSpace(r.Price))
	if err != nil {
		return pricebook.FlatRow{}, err
	}
	return pricebook.FlatRow{
		Region:       strings.TrimSpace(r.Region),
		Country:      strings.TrimSpace(r.Country),
		Supplier:     strings.TrimSpace(r.Supplier),
		Currency:     strings.TrimSpace(r.Currency),
		PaymentTerms: strings.TrimSpace(r.PaymentTerms),
		Category:     pricebook.CategoryKey(strings.TrimSpace(r.Category)),
		Level:        strings.TrimSpace(r.Level),
		Modifier:     pricebook.Modifier(strings.TrimSpace(r.Modifier)),
		Price:        price,
	}, nil
}

type flatSheet struct {
	builder *pricebook.TableBuilder
	issues  []pricebook.Issue
}

func newFlatSheet() *flatSheet {
	return &flatSheet{builder: pricebook.NewTableBuilder()}
}

func (s *flatSheet) add(path string, rec flatRecord) {
	row, err := rec.toRow()
	if err == nil {
		err = s.builder.Add(row)
	}
	if err != nil {
		s.issues = append(s.issues, pricebook.Issue{Path: path, Message: err.Error()})
	}
}

func (s *flatSheet) done() (*pricebook.Table, []pricebook.Issue, error) {
	return s.builder.Table(), s.issues, nil
}

func decodeCSV(r io.Reader) (*pricebook.Table, []pricebook.Issue, error) {
	sheet := newFlatSheet()

	cr := newCSVReader(r)
	dec, err := csvutil.NewDecoder(cr)
	if err == io.EOF {
		sheet.issues = append(sheet.issues, pricebook.Issue{Message: "empty document"})
		return sheet.done()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	for {
		var rec flatRecord
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, err
		}
		line, _ := cr.FieldPos(0)
		sheet.add(fmt.Sprintf("line %d", line), rec)
	}
	return sheet.done()
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	return cr
}

// htmlColumns maps normalized header text to record fields
var htmlColumns = map[string]func(*flatRecord, string){
	"region":        func(r *flatRecord, v string) { r.Region = v },
	"country":       func(r *flatRecord, v string) { r.Country = v },
	"supplier":      func(r *flatRecord, v string) { r.Supplier = v },
	"currency":      func(r *flatRecord, v string) { r.Currency = v },
	"payment_terms": func(r *flatRecord, v string) { r.PaymentTerms = v },
	"category":      func(r *flatRecord, v string) { r.Category = v },
	"level":         func(r *flatRecord, v string) { r.Level = v },
	"service_level": func(r *flatRecord, v string) { r.Level = v },
	"modifier":      func(r *flatRecord, v string) { r.Modifier = v },
	"backfill":      func(r *flatRecord, v string) { r.Modifier = v },
	"price":         func(r *flatRecord, v string) { r.Price = v },
}

// decodeHTML reads the first <table> of an exported price sheet
func decodeHTML(r io.Reader) (*pricebook.Table, []pricebook.Issue, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, err
	}

	sheet := newFlatSheet()
	table := doc.Find("table").First()
	if table.Length() == 0 {
		sheet.issues = append(sheet.issues, pricebook.Issue{Message: "no table found"})
		return sheet.done()
	}

	rows := table.Find("tr")
	var setters []func(*flatRecord, string)
	rows.First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		setters = append(setters, htmlColumns[normalizeHeader(cell.Text())])
	})

	rows.Slice(1, goquery.ToEnd).Each(func(i int, tr *goquery.Selection) {
		var rec flatRecord
		tr.Find("td").Each(func(j int, cell *goquery.Selection) {
			if j < len(setters) && setters[j] != nil {
				setters[j](&rec, strings.TrimSpace(cell.Text()))
			}
		})
		sheet.add(fmt.Sprintf("row %d", i+1), rec)
	})
	return sheet.done()
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), "_")
}
