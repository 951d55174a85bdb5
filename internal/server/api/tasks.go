// HTTP-хендлеры CRUD задач
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
)

// CreateTaskRequest тело запроса создания задачи.
//
// estado опционален: при отсутствии задача создаётся со статусом Pendiente.
// Неизвестное значение estado отклоняется ещё при декодировании.
type CreateTaskRequest struct {
	Descripcion string            `json:"descripcion"`
	Estado      models.TaskStatus `json:"estado,omitempty"`
}

// UpdateTaskRequest тело запроса частичного обновления задачи.
//
// Поля-указатели, чтобы отличать «не передано» от пустого значения:
// незаданные поля не трогаются. Пустое тело {} — ошибка.
type UpdateTaskRequest struct {
	Descripcion *string            `json:"descripcion,omitempty"`
	Estado      *models.TaskStatus `json:"estado,omitempty"`
}

// CreateTask создаёт новую задачу.
//
// Ответы:
//   - 201 Created: задача создана, в ответе полный документ;
//   - 400 Bad Request: неверный JSON, пустое описание или неизвестный статус;
//   - 500 Internal Server Error: ошибка хранилища.
//
// @Summary      Create task
// @Description  Creates a task. Status defaults to Pendiente.
// @Tags         tareas
// @Accept       json
// @Produce      json
// @Param        request body CreateTaskRequest true "Create task request"
// @Success      201 {object} models.Task
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tareas [post]
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	task, err := h.Svc.Tasks.Create(r.Context(), req.Descripcion, req.Estado)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Logger.Sugar().Errorw("create task failed",
				"error", err,
				"request_id", middleware.RequestIDFromContext(r.Context()),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

// ListTasks возвращает все задачи.
//
// Порядок — нативный порядок хранилища, контрактом не гарантируется.
//
// Ответы:
//   - 200 OK: массив задач (возможно пустой);
//   - 500 Internal Server Error: ошибка хранилища.
//
// @Summary      List tasks
// @Description  Returns all tasks in store-native order.
// @Tags         tareas
// @Produce      json
// @Success      200 {array} models.Task
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tareas [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Svc.Tasks.List(r.Context())
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list tasks failed",
			"error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	WriteJSON(w, http.StatusOK, tasks)
}

// GetTask возвращает задачу по id.
//
// Ответы:
//   - 200 OK: задача;
//   - 400 Bad Request: id не является валидным идентификатором;
//   - 404 Not Found: задачи нет;
//   - 500 Internal Server Error: ошибка хранилища.
//
// @Summary      Get task
// @Tags         tareas
// @Produce      json
// @Param        id path string true "Task ID (hex ObjectID)"
// @Success      200 {object} models.Task
// @Failure      400 {object} ErrorResponse "Invalid id"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tareas/{id} [get]
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.Svc.Tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeTaskError(w, r, err, "get task failed")
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

// UpdateTask применяет частичное обновление задачи.
//
// Незаданные поля не трогаются; пустое тело {} — ошибка.
//
// Ответы:
//   - 200 OK: документ после обновления;
//   - 400 Bad Request: невалидный id, пустое обновление или данные;
//   - 404 Not Found: задачи нет;
//   - 500 Internal Server Error: ошибка хранилища.
//
// @Summary      Update task
// @Description  Partial update: only provided fields are touched.
// @Tags         tareas
// @Accept       json
// @Produce      json
// @Param        id      path string true "Task ID (hex ObjectID)"
// @Param        request body UpdateTaskRequest true "Fields to update"
// @Success      200 {object} models.Task
// @Failure      400 {object} ErrorResponse "Invalid id, empty update or bad JSON"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tareas/{id} [put]
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	task, err := h.Svc.Tasks.Update(r.Context(), chi.URLParam(r, "id"), req.Descripcion, req.Estado)
	if err != nil {
		h.writeTaskError(w, r, err, "update task failed")
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

// DeleteTask удаляет задачу по id.
//
// Ответы:
//   - 204 No Content: задача удалена, тело пустое;
//   - 400 Bad Request: id не является валидным идентификатором;
//   - 404 Not Found: задачи нет;
//   - 500 Internal Server Error: ошибка хранилища.
//
// @Summary      Delete task
// @Tags         tareas
// @Param        id path string true "Task ID (hex ObjectID)"
// @Success      204 "No content"
// @Failure      400 {object} ErrorResponse "Invalid id"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tareas/{id} [delete]
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeTaskError(w, r, err, "delete task failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeTaskError — общий маппинг доменных ошибок задач в HTTP-статусы.
func (h *Handler) writeTaskError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, serr.ErrInvalidID),
		errors.Is(err, serr.ErrEmptyUpdate),
		errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, err)
	default:
		h.Log.Logger.Sugar().Errorw(logMsg,
			"error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}
