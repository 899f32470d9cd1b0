package api

import (
	"lender-quote/core/types"
)

// QuoteRequest is the body of POST /quote/{variant}: the calculation
// fields as flat strings, matching the form surface, plus an optional
// lead for delivery
type QuoteRequest struct {
	Fields map[string]string `json:"fields"`
	Lead   *types.Lead       `json:"lead,omitempty"`
}

// QuoteResponse wraps a successful calculation
type QuoteResponse struct {
	Quote    *types.QuoteResult `json:"quote"`
	Cached   bool               `json:"cached"`
	InputKey string             `json:"inputKey"`
}

// RejectionResponse is the body of a typed calculation rejection
type RejectionResponse struct {
	Error RejectionDetail `json:"error"`
}

// RejectionDetail carries the rejection taxonomy entry and remediation
// context
type RejectionDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}
