package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmate/taskmate-api/internal/api/metrics"
	"github.com/taskmate/taskmate-api/internal/core/domain"
	"github.com/taskmate/taskmate-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Errors are returned
// as domain errors and rendered by the API error handler.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List visible tasks
// @Description  Anonymous callers see every task; authenticated callers see their own.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Exact status filter"
// @Param        priority  query     string  false  "Exact priority filter"
// @Param        search    query     string  false  "Substring of title or description"
// @Success      200       {object}  listTasksResponse
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.ListTasks(c.Request().Context(), principal(c), ports.ListTasksInput{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listTasksResponse{
		Tasks: toTaskResponses(tasks),
		Total: len(tasks),
	})
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  taskEnvelope
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.service.GetTask(c.Request().Context(), principal(c), id)
	if err != nil {
		return observeDenied(err)
	}

	return c.JSON(http.StatusOK, taskEnvelope{Task: toTaskResponse(task)})
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task attributes"
// @Success      201   {object}  taskMutationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	p := principal(c)
	if !p.Authenticated {
		return domain.ErrUnauthenticated
	}

	fields, err := bindTaskFields(c)
	if err != nil {
		return err
	}
	input := ports.CreateTaskInput{
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
	}
	if fields.Title != nil {
		input.Title = *fields.Title
	}

	task, err := h.service.CreateTask(c.Request().Context(), p, input)
	if err != nil {
		return err
	}
	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()

	return c.JSON(http.StatusCreated, taskMutationResponse{
		Message: "Task created successfully",
		Task:    toTaskResponse(task),
	})
}

// Update handles PUT /api/tasks/:id.
//
// @Summary      Update a task
// @Description  Partial update: only the fields present in the body change.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskMutationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	p := principal(c)
	if !p.Authenticated {
		return domain.ErrUnauthenticated
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	fields, err := bindTaskFields(c)
	if err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Request().Context(), p, id, ports.UpdateTaskInput{
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
	})
	if err != nil {
		return observeDenied(err)
	}
	metrics.TasksMutatedTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, taskMutationResponse{
		Message: "Task updated successfully",
		Task:    toTaskResponse(task),
	})
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	p := principal(c)
	if !p.Authenticated {
		return domain.ErrUnauthenticated
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), p, id); err != nil {
		return observeDenied(err)
	}
	metrics.TasksMutatedTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}

// Stats handles GET /api/stats.
//
// @Summary      Task statistics
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /api/stats [get]
func (h *TaskHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

// Dashboard handles GET /api/dashboard.
//
// @Summary      Statistics plus recently updated tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /api/dashboard [get]
func (h *TaskHandler) Dashboard(c echo.Context) error {
	dash, err := h.service.Dashboard(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Stats:       toStatsResponse(&dash.Stats),
		RecentTasks: toTaskResponses(dash.Recent),
	})
}

func observeDenied(err error) error {
	if errors.Is(err, domain.ErrForbidden) {
		metrics.TaskAccessDeniedTotal.Inc()
	}
	return err
}
