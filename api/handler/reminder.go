package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskmind/backend/api/transport"
	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/internal/services"
	"github.com/taskmind/backend/pkg/dates"
	"github.com/taskmind/backend/pkg/httpcontext"
	accountUC "github.com/taskmind/backend/usecase/account"
)

type ReminderHandler struct {
	baseHandler
	factory  *services.Factory
	accounts *accountUC.Service
}

func NewReminderHandler(factory *services.Factory, accounts *accountUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		factory:     factory,
		accounts:    accounts,
	}
}

// @Summary List reminders, optionally for one task
// @Tags reminders
// @Router /api/v1/reminders [get]
func (h *ReminderHandler) List(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	svc := h.factory.RemindersFor(username)

	var (
		reminders []domain.Reminder
		err       error
	)
	if taskID := string(ctx.QueryArgs().Peek("task_id")); taskID != "" {
		reminders, err = svc.ForTask(stdCtx, taskID)
	} else {
		reminders, err = svc.All(stdCtx)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewReminderViews(reminders))
}

// @Summary Create reminder at an explicit time
// @Tags reminders
// @Router /api/v1/reminders [post]
func (h *ReminderHandler) Create(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.ReminderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.TaskID == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	at, err := dates.ParseDisplay(req.ReminderTime)
	if err != nil {
		h.respondInvalid(ctx, "invalid reminder time")
		return
	}
	if at == nil {
		h.respondError(ctx, domain.ErrNoReminderTime)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reminder, err := h.factory.RemindersFor(username).Create(stdCtx, req.TaskID, *at, req.Message)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.NewReminderView(*reminder))
}

// @Summary Create reminder offset from the task's deadline
// @Tags reminders
// @Router /api/v1/reminders/before-deadline [post]
func (h *ReminderHandler) CreateBeforeDeadline(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.BeforeDeadlineRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.TaskID == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.factory.TasksFor(username).Get(stdCtx, req.TaskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if task == nil {
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "task not found", nil))
		return
	}

	// An omitted offset falls back to the account's default lead time.
	minutes := req.MinutesBefore
	if minutes <= 0 {
		settings, err := h.accounts.NotificationSettings(stdCtx, username)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		minutes = settings.DefaultReminderMinutes
	}

	reminder, err := h.factory.RemindersFor(username).CreateBeforeDeadline(stdCtx, task, minutes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.NewReminderView(*reminder))
}

// @Summary List currently due reminders
// @Tags reminders
// @Router /api/v1/reminders/due [get]
func (h *ReminderHandler) Due(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reminders, err := h.factory.RemindersFor(username).Due(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewReminderViews(reminders))
}

// @Summary Run one due-reminder check cycle
// @Tags reminders
// @Router /api/v1/reminders/check [post]
func (h *ReminderHandler) Check(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	fired, err := h.factory.RemindersFor(username).CheckReminders(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewReminderViews(fired))
}

// @Summary Delete reminder
// @Tags reminders
// @Router /api/v1/reminders/{id} [delete]
func (h *ReminderHandler) Delete(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing reminder id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.factory.RemindersFor(username).Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
