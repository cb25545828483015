package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/api/transport"
	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/pkg/httpcontext"
	taskUC "github.com/taskflow/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks with optional view filters
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	query := taskUC.Query{
		Search:  string(ctx.QueryArgs().Peek("search")),
		Status:  domain.Status(ctx.QueryArgs().Peek("status")),
		DueDate: string(ctx.QueryArgs().Peek("due_date")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, userID, query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get one task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.ownedTask(stdCtx, ctx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	task := &domain.Task{
		Owner:       userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		DueDate:     req.DueDate,
		Status:      domain.Status(req.Status),
		Attachments: req.Attachments,
	}
	if task.Category == "" {
		task.Category = domain.CategoryWork
	}
	if task.Status == "" {
		task.Status = domain.StatusTodo
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task fields and append changelog entries
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TaskUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	previous, err := h.ownedTask(stdCtx, ctx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if _, err := h.uc.UpdateTask(stdCtx, previous.ID, req.ToPatch(), *previous); err != nil {
		h.respondError(ctx, err)
		return
	}

	updated, err := h.uc.GetTask(stdCtx, previous.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Remove an attachment by position
// @Tags tasks
// @Router /api/v1/tasks/{id}/attachments/{index} [delete]
func (h *TaskHandler) RemoveAttachment(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	rawIndex, _ := ctx.UserValue("index").(string)
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid attachment index", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	previous, err := h.ownedTask(stdCtx, ctx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.uc.RemoveAttachment(stdCtx, *previous, index); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Set status on a set of tasks
// @Tags tasks
// @Router /api/v1/tasks/bulk/status [post]
func (h *TaskHandler) BulkUpdateStatus(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.BulkStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.BulkUpdateStatus(stdCtx, req.IDs, domain.Status(req.Status)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Delete a set of tasks
// @Tags tasks
// @Router /api/v1/tasks/bulk/delete [post]
func (h *TaskHandler) BulkDelete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.BulkDeleteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.BulkDelete(stdCtx, req.IDs); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// ownedTask loads the path task and hides other owners' tasks behind a
// not-found so ids cannot be probed across accounts.
func (h *TaskHandler) ownedTask(stdCtx context.Context, ctx *fasthttp.RequestCtx, userID string) (*domain.Task, error) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "missing task id")
	}
	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		return nil, err
	}
	if task.Owner != userID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
