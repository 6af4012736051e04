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
	categoryUC "github.com/taskmind/backend/usecase/category"
)

type TaskHandler struct {
	baseHandler
	factory    *services.Factory
	categories *categoryUC.Service
}

func NewTaskHandler(factory *services.Factory, categories *categoryUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		factory:     factory,
		categories:  categories,
	}
}

// @Summary List tasks, optionally sorted or filtered by deadline range
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	svc := h.factory.TasksFor(username)

	from := string(ctx.QueryArgs().Peek("from"))
	to := string(ctx.QueryArgs().Peek("to"))
	if from != "" || to != "" {
		start, err := dates.ParseDisplay(from)
		if err != nil {
			h.respondInvalid(ctx, "invalid from date")
			return
		}
		end, err := dates.ParseDisplay(to)
		if err != nil {
			h.respondInvalid(ctx, "invalid to date")
			return
		}
		if start == nil || end == nil {
			h.respondInvalid(ctx, "both from and to are required")
			return
		}
		tasks, err := svc.InDateRange(stdCtx, *start, *end)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		h.respondSuccess(ctx, http.StatusOK, transport.NewTaskViews(tasks))
		return
	}

	var (
		tasks []domain.Task
		err   error
	)
	switch string(ctx.QueryArgs().Peek("sort")) {
	case "deadline":
		tasks, err = svc.SortedByDeadline(stdCtx)
	case "priority":
		tasks, err = svc.SortedByPriority(stdCtx)
	default:
		tasks, err = svc.All(stdCtx)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTaskViews(tasks))
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	category, err := h.categories.Get(stdCtx, req.CategoryID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	svc := h.factory.TasksFor(username)
	task, err := svc.Create(stdCtx, req.Name, description, category)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	// Deadline and priority are optional at creation and applied as an
	// immediate update when supplied.
	if req.Deadline != "" || req.Priority != "" {
		if err := applyTaskRequest(task, req); err != nil {
			h.respondError(ctx, err)
			return
		}
		if err := svc.Update(stdCtx, task); err != nil {
			h.respondError(ctx, err)
			return
		}
	}

	h.respondSuccess(ctx, http.StatusCreated, transport.NewTaskView(*task))
}

// @Summary Get a task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.factory.TasksFor(username).Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if task == nil {
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "task not found", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTaskView(*task))
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			req.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	svc := h.factory.TasksFor(username)
	task, err := svc.Get(stdCtx, req.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if task == nil {
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "task not found", nil))
		return
	}

	mergeTaskRequest(task, req)
	if req.CategoryID != "" && (task.Category == nil || task.Category.ID != req.CategoryID) {
		category, err := h.categories.Get(stdCtx, req.CategoryID)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		task.Category = category
	}
	if err := applyTaskRequest(task, req); err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := svc.Update(stdCtx, task); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTaskView(*task))
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.factory.TasksFor(username).Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Mark task completed
// @Tags tasks
// @Router /api/v1/tasks/{id}/complete [post]
func (h *TaskHandler) Complete(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.factory.TasksFor(username).MarkCompleted(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// mergeTaskRequest applies the sparse update semantics: a field the payload
// omitted keeps the task's stored value.
func mergeTaskRequest(task *domain.Task, req transport.TaskRequest) {
	if req.Name != "" {
		task.Name = req.Name
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
}

func applyTaskRequest(task *domain.Task, req transport.TaskRequest) error {
	if req.Priority != "" {
		priority, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return err
		}
		task.Priority = priority
	}
	if req.Deadline != "" {
		deadline, err := dates.ParseDisplay(req.Deadline)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "invalid deadline", err)
		}
		task.SetDeadline(deadline)
	}
	return nil
}
