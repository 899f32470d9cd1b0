package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lender-quote/core/engine"
	"lender-quote/core/ratetable"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	eng, err := engine.New(ratetable.Default())
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	return NewServer("test", eng, nil, nil)
}

func postQuote(t *testing.T, s *Server, variant string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(QuoteRequest{Fields: fields})
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/quote/"+variant, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestQuoteEndpoint proves a full residential quote over HTTP,
// including the cache on the second identical request
func TestQuoteEndpoint(t *testing.T) {
	s := testServer(t)
	fields := map[string]string{
		"propertyValue": "400000",
		"monthlyRent":   "1800",
		"productType":   "2yr Fix",
	}

	rec := postQuote(t, s, "residential", fields)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp QuoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Quote == nil || len(resp.Quote.Columns) != 4 {
		t.Fatalf("unexpected quote payload: %+v", resp.Quote)
	}
	if resp.Cached {
		t.Error("first request served from cache")
	}

	rec = postQuote(t, s, "residential", fields)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Cached {
		t.Error("identical request not served from cache")
	}
}

// TestQuoteRejectionShape proves typed rejections map to the HTTP
// error envelope
func TestQuoteRejectionShape(t *testing.T) {
	s := testServer(t)

	rec := postQuote(t, s, "residential", map[string]string{
		"propertyValue": "400000",
		"monthlyRent":   "1800",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp RejectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding rejection: %v", err)
	}
	if resp.Error.Code != "INCOMPLETE_INPUT" {
		t.Errorf("code = %q, want INCOMPLETE_INPUT", resp.Error.Code)
	}
}

// TestQuoteLtvRejectionCarriesContext proves remediation context
// survives serialization
func TestQuoteLtvRejectionCarriesContext(t *testing.T) {
	s := testServer(t)

	rec := postQuote(t, s, "fusion", map[string]string{
		"propertyValue": "1000000",
		"grossLoan":     "900000",
		"propertyClass": "Residential",
		"rolledMonths":  "6",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp RejectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding rejection: %v", err)
	}
	if resp.Error.Code != "LTV_EXCEEDED" {
		t.Errorf("code = %q, want LTV_EXCEEDED", resp.Error.Code)
	}
	if _, ok := resp.Error.Context["max_loan"]; !ok {
		t.Error("rejection lost the max_loan context")
	}
}

// TestUnknownVariantIs404 proves a bad path segment is not found
func TestUnknownVariantIs404(t *testing.T) {
	s := testServer(t)
	rec := postQuote(t, s, "heloc", map[string]string{})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestInvalidJSONIs400 proves body parse failures are bad requests
func TestInvalidJSONIs400(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/quote/residential", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHealthAndVersion proves the supporting endpoints respond
func TestHealthAndVersion(t *testing.T) {
	s := testServer(t)
	for _, path := range []string{"/health", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

// TestRatesEndpoint proves the rate sheets are inspectable
func TestRatesEndpoint(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/rates/bridging", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Single Property")) {
		t.Error("bridging rates payload missing products")
	}
}
