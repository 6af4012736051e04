package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskmind/backend/api/transport"
	"github.com/taskmind/backend/internal/services"
	"github.com/taskmind/backend/pkg/httpcontext"
)

type DeadlineHandler struct {
	baseHandler
	factory *services.Factory
}

func NewDeadlineHandler(factory *services.Factory, adapter *httpcontext.Adapter, logger *zap.Logger) *DeadlineHandler {
	return &DeadlineHandler{
		baseHandler: newBaseHandler(adapter, logger),
		factory:     factory,
	}
}

// @Summary Upcoming deadlines
// @Tags deadlines
// @Router /api/v1/deadlines/upcoming [get]
func (h *DeadlineHandler) Upcoming(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	days := 7
	if raw := string(ctx.QueryArgs().Peek("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondInvalid(ctx, "invalid days")
			return
		}
		days = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.factory.DeadlinesFor(username).Upcoming(stdCtx, days)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTaskViews(tasks))
}

// @Summary Overdue tasks
// @Tags deadlines
// @Router /api/v1/deadlines/overdue [get]
func (h *DeadlineHandler) Overdue(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.factory.DeadlinesFor(username).Overdue(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTaskViews(tasks))
}

// @Summary Tasks due today
// @Tags deadlines
// @Router /api/v1/deadlines/today [get]
func (h *DeadlineHandler) DueToday(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.factory.DeadlinesFor(username).DueToday(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTaskViews(tasks))
}

// @Summary Deadline status for one task
// @Tags deadlines
// @Router /api/v1/deadlines/{id}/status [get]
func (h *DeadlineHandler) Status(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.factory.DeadlinesFor(username).Status(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"task_id": id, "status": string(status)})
}

// @Summary Extend a deadline
// @Tags deadlines
// @Router /api/v1/deadlines/{id}/extend [post]
func (h *DeadlineHandler) Extend(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	var req transport.ExtendDeadlineRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moved, err := h.factory.DeadlinesFor(username).Extend(stdCtx, id, req.Days)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"extended": moved})
}
