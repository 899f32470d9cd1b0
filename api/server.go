// Package api - thin, deterministic API layer.
// The API is ONLY responsible for: input ingestion, engine
// orchestration, output serialization. The API NEVER performs loan
// arithmetic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lender-quote/adapters/cache"
	"lender-quote/adapters/lead"
	"lender-quote/core/engine"
	"lender-quote/core/types"
	"lender-quote/internal/errors"
	"lender-quote/internal/logging"
)

// Server is the API server
type Server struct {
	engine  *engine.Engine
	cache   cache.Cache
	leads   *lead.Adapter
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server
func NewServer(version string, eng *engine.Engine, c cache.Cache, leads *lead.Adapter) *Server {
	if c == nil {
		c = cache.NewMemory()
	}
	if leads == nil {
		leads = lead.New("")
	}

	s := &Server{
		engine:  eng,
		cache:   c,
		leads:   leads,
		mux:     http.NewServeMux(),
		version: version,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /quote/{variant}", s.handleQuote)
	s.mux.HandleFunc("GET /rates/{variant}", s.handleRates)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleQuote handles POST /quote/{variant}
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	variant, ok := parseVariant(r.PathValue("variant"))
	if !ok {
		s.writeError(w, "UNKNOWN_VARIANT", "unknown calculator variant", http.StatusNotFound)
		return
	}

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	key := cache.Key(variant, req.Fields)
	if cached, hit := s.cache.Get(ctx, key); hit {
		s.deliverLead(req.Lead, cached)
		s.writeJSON(w, QuoteResponse{Quote: cached, Cached: true, InputKey: key}, http.StatusOK)
		return
	}

	in, err := engine.ParseInput(req.Fields)
	if err != nil {
		s.writeRejection(w, err)
		return
	}

	result, err := s.engine.Quote(variant, in)
	if err != nil {
		s.writeRejection(w, err)
		return
	}

	s.cache.Set(ctx, key, result)
	s.deliverLead(req.Lead, result)

	logging.Debug("quote served",
		zap.String("variant", string(variant)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	s.writeJSON(w, QuoteResponse{Quote: result, InputKey: key}, http.StatusOK)
}

// handleRates handles GET /rates/{variant}
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	tables := s.engine.Tables()

	switch r.PathValue("variant") {
	case string(types.VariantResidential):
		s.writeJSON(w, tables.Residential, http.StatusOK)
	case string(types.VariantCommercial):
		s.writeJSON(w, map[string]interface{}{
			"commercial":     tables.Commercial,
			"semiCommercial": tables.SemiCommercial,
		}, http.StatusOK)
	case string(types.VariantPrime):
		s.writeJSON(w, tables.Prime, http.StatusOK)
	case string(types.VariantFusion):
		s.writeJSON(w, tables.Fusion, http.StatusOK)
	case string(types.VariantBridging):
		s.writeJSON(w, tables.Bridging, http.StatusOK)
	default:
		s.writeError(w, "UNKNOWN_VARIANT", "unknown calculator variant", http.StatusNotFound)
	}
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "lender-quote",
		"api_version": "v1",
	}, http.StatusOK)
}

// deliverLead fires lead delivery without blocking or failing the quote
func (s *Server) deliverLead(l *types.Lead, res *types.QuoteResult) {
	if l == nil || !s.leads.Enabled() {
		return
	}
	go func(l types.Lead) {
		ctx, cancel := contextWithDeliveryTimeout()
		defer cancel()
		_ = s.leads.Deliver(ctx, l, res)
	}(*l)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, RejectionResponse{
		Error: RejectionDetail{Code: code, Message: message},
	}, status)
}

// writeRejection maps a typed domain rejection to its HTTP shape
func (s *Server) writeRejection(w http.ResponseWriter, err error) {
	e, ok := err.(*errors.Error)
	if !ok {
		s.writeError(w, string(errors.TypeInternal), err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusUnprocessableEntity
	switch e.Type {
	case errors.TypeIncompleteInput, errors.TypeInvalidInput:
		status = http.StatusBadRequest
	case errors.TypeConfig, errors.TypeInternal:
		status = http.StatusInternalServerError
	}

	s.writeJSON(w, RejectionResponse{
		Error: RejectionDetail{
			Code:    string(e.Type),
			Message: e.Message,
			Context: e.Context,
		},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// contextWithDeliveryTimeout bounds background lead delivery, which
// outlives the request context
func contextWithDeliveryTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

func parseVariant(raw string) (types.Variant, bool) {
	for _, v := range types.Variants {
		if raw == string(v) {
			return v, true
		}
	}
	return "", false
}
