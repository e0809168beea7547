package api

import (
	"fmt"
	"net/http"

	"github.com/taskwell/taskwell-api/internal/api/shared"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service"
	"github.com/taskwell/taskwell-api/internal/store"
)

// TaskHandler handles task-related API requests.
//
// Mutating endpoints take their arguments from the query string rather
// than a JSON body; the request surface is part of the public API contract
// and is kept as is.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListOwn handles GET /task. It lists the authenticated user's own tasks.
func (h *TaskHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	page, err := h.taskService.ListAuthoredBy(r.Context(), identity, getPageParams(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskPageResponse(page))
}

// ListByAuthor handles GET /task/{email}. Public; no filter.
func (h *TaskHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	h.listByAuthor(w, r, store.TaskFilter{}, nil)
}

// ListByAuthorStatus handles GET /task/{email}/status?status=.
func (h *TaskHandler) ListByAuthorStatus(w http.ResponseWriter, r *http.Request) {
	filter, err := getStatusFilter(r)
	h.listByAuthor(w, r, filter, err)
}

// ListByAuthorPriority handles GET /task/{email}/priority?priority=.
func (h *TaskHandler) ListByAuthorPriority(w http.ResponseWriter, r *http.Request) {
	filter, err := getPriorityFilter(r)
	h.listByAuthor(w, r, filter, err)
}

// ListByWorker handles GET /task/worker/{email}. Public; no filter.
func (h *TaskHandler) ListByWorker(w http.ResponseWriter, r *http.Request) {
	h.listByWorker(w, r, store.TaskFilter{}, nil)
}

// ListByWorkerStatus handles GET /task/worker/{email}/status?status=.
func (h *TaskHandler) ListByWorkerStatus(w http.ResponseWriter, r *http.Request) {
	filter, err := getStatusFilter(r)
	h.listByWorker(w, r, filter, err)
}

// ListByWorkerPriority handles GET /task/worker/{email}/priority?priority=.
func (h *TaskHandler) ListByWorkerPriority(w http.ResponseWriter, r *http.Request) {
	filter, err := getPriorityFilter(r)
	h.listByWorker(w, r, filter, err)
}

func (h *TaskHandler) listByAuthor(
	w http.ResponseWriter,
	r *http.Request,
	filter store.TaskFilter,
	filterErr error,
) {
	if filterErr != nil {
		HandleAPIError(w, r, filterErr, "")
		return
	}

	email, err := getPathEmail(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.taskService.ListByAuthorEmail(r.Context(), email, filter, getPageParams(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskPageResponse(page))
}

func (h *TaskHandler) listByWorker(
	w http.ResponseWriter,
	r *http.Request,
	filter store.TaskFilter,
	filterErr error,
) {
	if filterErr != nil {
		HandleAPIError(w, r, filterErr, "")
		return
	}

	email, err := getPathEmail(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.taskService.ListByWorkerEmail(r.Context(), email, filter, getPageParams(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskPageResponse(page))
}

// Create handles POST /task?title=&comment=&priority=.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	title := query.Get("title")
	comment := query.Get("comment")

	// Priority is optional; when absent the service defaults it to Low.
	var priority domain.TaskPriority
	if raw := query.Get("priority"); raw != "" {
		parsed, err := domain.ParseTaskPriority(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		priority = parsed
	}

	task, err := h.taskService.AddTask(r.Context(), identity, title, comment, priority)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// Edit handles PUT /task?taskID=&title=&comment=.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	taskID, err := getQueryUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	query := r.URL.Query()
	task, err := h.taskService.EditTask(r.Context(), identity, taskID, query.Get("title"), query.Get("comment"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// ChangeStatus handles PUT /task/status?taskID=&status=.
func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	taskID, err := getQueryUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.ChangeStatus(
		r.Context(),
		identity,
		taskID,
		domain.TaskStatus(r.URL.Query().Get("status")),
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// AddWorker handles PUT /task/worker?taskID=&email=.
func (h *TaskHandler) AddWorker(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	taskID, err := getQueryUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		HandleAPIError(w, r, domain.NewValidationError("email", "is required", domain.ErrValidation), "")
		return
	}

	task, err := h.taskService.AddWorker(r.Context(), identity, taskID, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// RemoveWorker handles DELETE /task/worker?taskID=&email=.
func (h *TaskHandler) RemoveWorker(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	taskID, err := getQueryUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		HandleAPIError(w, r, domain.NewValidationError("email", "is required", domain.ErrValidation), "")
		return
	}

	task, err := h.taskService.RemoveWorker(r.Context(), identity, taskID, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /task?taskID=. On success it answers with a
// plain-text confirmation rather than a JSON body.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	taskID, err := getQueryUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), identity, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithText(w, r, http.StatusOK, fmt.Sprintf("Task %s deleted", taskID))
}
