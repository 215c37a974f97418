package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"pricebook/core/calculator"
	"pricebook/core/output"
	"pricebook/core/pricebook"
	"pricebook/internal/errors"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.table.Stats()
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"regions": stats.Regions,
		"prices":  stats.Prices,
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "pricebook",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleRegions handles GET /regions
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	s.writeOptions(w, r, pricebook.Selection{}, plainOptions(pricebook.RegionsOf(s.table)))
}

// handleCountries handles GET /countries?region=
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(r)
	s.writeOptions(w, r, pricebook.Selection{Region: sel.Region},
		plainOptions(pricebook.CountriesOf(s.table, sel.Region)))
}

// handleCategories handles GET /categories?region=&country=
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(r)
	cats := pricebook.AvailableCategories(s.table, sel.Region, sel.Country)
	opts := make([]calculator.Option, 0, len(cats))
	for _, c := range cats {
		opts = append(opts, calculator.Option{Value: string(c), Label: pricebook.CategoryLabel(c)})
	}
	s.writeOptions(w, r, pricebook.Selection{Region: sel.Region, Country: sel.Country}, opts)
}

// handleLevels handles GET /levels?region=&country=&category=
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(r)
	levels := pricebook.LevelsFor(s.table, sel.Region, sel.Country, sel.Category)
	s.writeOptions(w, r, pricebook.Selection{Region: sel.Region, Country: sel.Country, Category: sel.Category},
		plainOptions(levels))
}

// handleForm handles GET /form, describing the calculator for a partial selection.
// Unlike the list endpoints, every value must be one the form would offer.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	form := calculator.New(s.table)
	if err := form.Apply(selectionFromQuery(r)); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, FormResponse{
		RequestID:    requestID(r),
		Selection:    form.Selection(),
		Fields:       form.Fields(),
		CanCalculate: form.CanCalculate(),
	}, http.StatusOK)
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFailure(w, r, errors.Input("invalid quote request", err))
		return
	}

	res := calculator.Quote(s.table, req)
	currency := res.Currency
	if currency == "" {
		currency = s.opts.DefaultCurrency
	}
	s.writeJSON(w, QuoteResponse{
		RequestID:    requestID(r),
		Result:       res,
		DisplayPrice: output.FormatPrice(res.Price, currency),
	}, http.StatusOK)
}

func (s *Server) writeOptions(w http.ResponseWriter, r *http.Request, sel pricebook.Selection, opts []calculator.Option) {
	s.writeJSON(w, OptionsResponse{
		RequestID: requestID(r),
		Selection: sel,
		Options:   opts,
	}, http.StatusOK)
}

// writeFailure maps an error to its status code and error code
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case stderrors.Is(err, calculator.ErrInvalidOption):
		s.writeError(w, r, CodeInvalidOption, err.Error(), http.StatusBadRequest)
	case errors.IsType(err, errors.TypeInput):
		s.writeError(w, r, CodeInvalidJSON, err.Error(), http.StatusBadRequest)
	default:
		s.writeError(w, r, CodeInternal, err.Error(), http.StatusInternalServerError)
	}
}

func selectionFromQuery(r *http.Request) pricebook.Selection {
	q := r.URL.Query()
	return pricebook.Selection{
		Region:   q.Get("region"),
		Country:  q.Get("country"),
		Category: pricebook.CategoryKey(q.Get("category")),
		Level:    q.Get("level"),
		Modifier: pricebook.Modifier(q.Get("modifier")),
	}
}

func plainOptions(values []string) []calculator.Option {
	opts := make([]calculator.Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, calculator.Option{Value: v, Label: v})
	}
	return opts
}
