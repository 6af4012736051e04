package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskmind/backend/api/transport"
	"github.com/taskmind/backend/internal/infrastructure/monitor"
	"github.com/taskmind/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

type healthView struct {
	Postgres  bool      `json:"postgres"`
	Redis     bool      `json:"redis"`
	Buffer    bool      `json:"buffer"`
	Pending   int       `json:"pending_operations"`
	CheckedAt time.Time `json:"checked_at"`
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.Snapshot()
	view := healthView{
		Postgres:  status.Postgres,
		Redis:     status.Redis,
		Buffer:    status.Buffer,
		Pending:   status.Pending,
		CheckedAt: status.CheckedAt,
	}

	if status.Online() {
		h.respondSuccess(ctx, http.StatusOK, view)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "backing stores unhealthy", view))
}
