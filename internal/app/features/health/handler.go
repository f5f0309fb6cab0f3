package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Gateway *gateway.Client
	Log     *zap.Logger
}

// NewHandler constructs a health Handler with the API gateway and logger.
func NewHandler(gw *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Gateway: gw,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	API     string `json:"api"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "api":"reachable" }
//
// On API failure: 503 and
//
//	{ "status":"error", "api":"unreachable", "message":"API unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status: "ok",
		API:    "reachable",
	}

	// The CSRF bootstrap endpoint doubles as a cheap reachability probe.
	if err := h.Gateway.EstablishCSRF(ctx); err != nil {
		h.Log.Error("health-check: api probe failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.API = "unreachable"
		resp.Message = "API unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
