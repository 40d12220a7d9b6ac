// Package transport exposes the HTTP decode API.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/rawtx"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/render"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// HTTPMetrics records served requests.
type HTTPMetrics interface {
	Observe(route, method string, code int, started time.Time)
}

// DecoderMetrics records decode outcomes.
type DecoderMetrics interface {
	Observe(operation string, err error, started time.Time)
}

// DecodeHandler serves raw-hex decode requests.
type DecodeHandler struct {
	logger         *zap.Logger
	httpMetrics    HTTPMetrics
	decoderMetrics DecoderMetrics
	maxBodyBytes   int64
}

// NewDecodeHandler returns a DecodeHandler instance.
func NewDecodeHandler(logger *zap.Logger, httpMetrics HTTPMetrics, decoderMetrics DecoderMetrics, maxBodyBytes int64) *DecodeHandler {
	return &DecodeHandler{
		logger:         logger,
		httpMetrics:    httpMetrics,
		decoderMetrics: decoderMetrics,
		maxBodyBytes:   maxBodyBytes,
	}
}

// Register mounts the decode API routes on mux.
func (h *DecodeHandler) Register(mux *http.ServeMux) {
	mux.Handle("POST /v1/decode", h.instrument("/v1/decode", h.handleDecodeTransaction))
	mux.Handle("POST /v1/decode/header", h.instrument("/v1/decode/header", h.handleDecodeHeader))
	mux.Handle("GET /v1/health", h.instrument("/v1/health", h.handleHealth))
}

type decodeRequest struct {
	Hex string `json:"hex"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *DecodeHandler) handleDecodeTransaction(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	started := time.Now()
	tx, err := rawtx.DecodeHex(req.Hex)
	h.decoderMetrics.Observe("decode_transaction", err, started)
	if err != nil {
		writeError(w, http.StatusBadRequest, decodeReason(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, render.NewDocument(tx))
}

func (h *DecodeHandler) handleDecodeHeader(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	started := time.Now()
	header, err := rawtx.DecodeHeaderHex(req.Hex)
	h.decoderMetrics.Observe("decode_header", err, started)
	if err != nil {
		writeError(w, http.StatusBadRequest, decodeReason(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, render.NewHeaderDocument(header))
}

func (h *DecodeHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

// readRequest parses the JSON request body, enforcing the body size cap.
// On failure the error response has already been written.
func (h *DecodeHandler) readRequest(w http.ResponseWriter, r *http.Request) (decodeRequest, bool) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer func() {
		_ = body.Close()
	}()

	var req decodeRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large",
				fmt.Sprintf("request body exceeds %d bytes", h.maxBodyBytes))
			return decodeRequest{}, false
		}
		writeError(w, http.StatusBadRequest, "invalid_request",
			"request body must be a JSON object with a hex field")
		return decodeRequest{}, false
	}

	req.Hex = strings.TrimSpace(req.Hex)
	if req.Hex == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "hex field is required")
		return decodeRequest{}, false
	}
	return req, true
}

func (h *DecodeHandler) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		h.httpMetrics.Observe(route, r.Method, rec.code, started)
		h.logger.Info("request served",
			zap.String("route", route),
			zap.String("method", r.Method),
			zap.Int("code", rec.code),
			zap.Duration("elapsed", time.Since(started)),
		)
	})
}

// statusRecorder captures the response code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func decodeReason(err error) string {
	switch {
	case errors.Is(err, rawtx.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, rawtx.ErrTruncatedVarInt):
		return "truncated_varint"
	case errors.Is(err, rawtx.ErrTrailingData):
		return "trailing_data"
	case errors.Is(err, rawtx.ErrInvalidEncoding):
		return "invalid_encoding"
	default:
		return "decode_failed"
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, reason, message string) {
	writeJSON(w, code, errorResponse{Error: message, Reason: reason})
}
