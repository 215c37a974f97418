// Package api - API types for the pricing calculator
// These types define the contract for the lookup, form and quote endpoints.
// The API is stateless: every request carries its full selection.
package api

import (
	"pricebook/core/calculator"
	"pricebook/core/pricebook"
)

// OptionsResponse is returned by the list endpoints
type OptionsResponse struct {
	RequestID string `json:"request_id"`

	// Selection echoes the query parameters the list depends on
	Selection pricebook.Selection `json:"selection"`

	Options []calculator.Option `json:"options"`
}

// QuoteRequest is the input to POST /quote
type QuoteRequest = pricebook.Selection

// QuoteResponse is the output of POST /quote.
// A selection without a price is a 200 with found=false.
type QuoteResponse struct {
	RequestID string `json:"request_id"`
	calculator.Result

	// DisplayPrice is the price as the calculator shows it, "-" when not found
	DisplayPrice string `json:"display_price"`
}

// FormResponse describes the calculator form for a selection
type FormResponse struct {
	RequestID    string                  `json:"request_id"`
	Selection    pricebook.Selection     `json:"selection"`
	Fields       []calculator.FieldState `json:"fields"`
	CanCalculate bool                    `json:"can_calculate"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	RequestID string      `json:"request_id,omitempty"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail names the failure
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	CodeInvalidJSON   = "INVALID_JSON"
	CodeInvalidOption = "INVALID_OPTION"
	CodeInternal      = "INTERNAL_ERROR"
)
