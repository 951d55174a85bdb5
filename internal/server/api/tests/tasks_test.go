package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-todo-api/internal/shared/utils"
)

func TestHandler_CreateTask_BadJSON(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/tareas", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	h.CreateTask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_CreateTask_UnknownStatusRejected(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	// неизвестный статус отклоняется ещё при декодировании
	req := httptest.NewRequest(
		http.MethodPost,
		"/tareas",
		bytes.NewBufferString(`{"descripcion":"Comprar pan","estado":"Terminada"}`),
	)
	rec := httptest.NewRecorder()

	h.CreateTask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_CreateTask_DefaultStatus(t *testing.T) {
	t.Parallel()

	h, _, tasks := NewTestHandler(t)

	id := primitive.NewObjectID()

	tasks.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			if task.Estado != models.StatusPendiente {
				t.Fatalf("expected default status Pendiente, got %q", task.Estado)
			}
			task.ID = id
			return task, nil
		})

	req := httptest.NewRequest(
		http.MethodPost,
		"/tareas",
		bytes.NewBufferString(`{"descripcion":"Comprar pan"}`),
	)
	req.Header.Set(api.ContentType, api.JsonContentType)
	rec := httptest.NewRecorder()

	h.CreateTask(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp models.Task
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != id {
		t.Fatalf("expected id %s, got %s", id.Hex(), resp.ID.Hex())
	}
	if resp.Estado != models.StatusPendiente {
		t.Fatalf("expected estado Pendiente, got %q", resp.Estado)
	}
	if resp.FechaCreacion.IsZero() {
		t.Fatal("expected fecha_creacion to be set")
	}
}

func TestHandler_ListTasks(t *testing.T) {
	t.Parallel()

	h, _, tasks := NewTestHandler(t)

	want := []models.Task{
		{ID: primitive.NewObjectID(), Descripcion: "uno", Estado: models.StatusPendiente, FechaCreacion: time.Now().UTC()},
		{ID: primitive.NewObjectID(), Descripcion: "dos", Estado: models.StatusEjecucion, FechaCreacion: time.Now().UTC()},
	}
	tasks.EXPECT().List(gomock.Any()).Return(want, nil)

	req := httptest.NewRequest(http.MethodGet, "/tareas", nil)
	rec := httptest.NewRecorder()

	h.ListTasks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp []models.Task
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Descripcion != "uno" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandler_ListTasks_EmptyIsArray(t *testing.T) {
	t.Parallel()

	h, _, tasks := NewTestHandler(t)

	tasks.EXPECT().List(gomock.Any()).Return([]models.Task{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tareas", nil)
	rec := httptest.NewRecorder()

	h.ListTasks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	// пустой список сериализуется как [], а не null
	if got := bytes.TrimSpace(rec.Body.Bytes()); string(got) != "[]" {
		t.Fatalf("expected [], got %q", got)
	}
}

func TestHandler_GetTask_InvalidID(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	r := chi.NewRouter()
	r.Get("/tareas/{id}", h.GetTask)

	req := httptest.NewRequest(http.MethodGet, "/tareas/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_GetTask_NotFound(t *testing.T) {
	t.Parallel()

	h, _, tasks := NewTestHandler(t)

	id := primitive.NewObjectID()
	tasks.EXPECT().GetByID(gomock.Any(), id).Return(models.Task{}, serr.ErrNotFound)

	r := chi.NewRouter()
	r.Get("/tareas/{id}", h.GetTask)

	req := httptest.NewRequest(http.MethodGet, "/tareas/"+id.Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandler_GetTask_Success(t *testing.T) {
	t.Parallel()

	h, _, tasks := NewTestHandler(t)

	want := models.Task{
		ID:            primitive.NewObjectID(),
		Descripcion:   "Comprar pan",
		Estado:        models.StatusRealizada,
		FechaCreacion: time.Now().UTC().Truncate(time.Millisecond),
	}
	tasks.EXPECT().GetByID(gomock.Any(), want.ID).Return(want, nil)

	r := chi.NewRouter()
	r.Get("/tareas/{id}", h.GetTask)

	req := httptest.NewRequest(http.MethodGet, "/tareas/"+want.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp models.Task
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != want.ID || resp.Estado != models.StatusRealizada {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandler_UpdateTask_EmptyBody(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	r := chi.NewRouter()
	r.Put("/tareas/{id}", h.UpdateTask)

	// пустое обновление {} — ошибка
	req := httptest.NewRequest(
		http.MethodPut,
		"/tareas/"+primitive.NewObjectID().Hex(),
		bytes.NewBufferString(`{}`),
	)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_UpdateTask_Partial(t *testing.T) {
	t.Parallel()

	h, _, tasks := NewTestHandler(t)

	id := primitive.NewObjectID()
	estado := utils.Ptr(models.StatusRealizada)

	tasks.EXPECT().
		Update(gomock.Any(), id, nil, estado).
		Return(models.Task{ID: id, Descripcion: "Comprar pan", Estado: models.StatusRealizada}, nil)

	r := chi.NewRouter()
	r.Put("/tareas/{id}", h.UpdateTask)

	req := httptest.NewRequest(
		http.MethodPut,
		"/tareas/"+id.Hex(),
		bytes.NewBufferString(`{"estado":"Realizada"}`),
	)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp models.Task
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Estado != models.StatusRealizada {
		t.Fatalf("expected estado Realizada, got %q", resp.Estado)
	}
}

func TestHandler_DeleteTask_Success(t *testing.T) {
	t.Parallel()

	h, _, tasks := NewTestHandler(t)

	id := primitive.NewObjectID()
	tasks.EXPECT().Delete(gomock.Any(), id).Return(nil)

	r := chi.NewRouter()
	r.Delete("/tareas/{id}", h.DeleteTask)

	req := httptest.NewRequest(http.MethodDelete, "/tareas/"+id.Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestHandler_DeleteTask_NotFound(t *testing.T) {
	t.Parallel()

	h, _, tasks := NewTestHandler(t)

	id := primitive.NewObjectID()
	tasks.EXPECT().Delete(gomock.Any(), id).Return(serr.ErrNotFound)

	r := chi.NewRouter()
	r.Delete("/tareas/{id}", h.DeleteTask)

	req := httptest.NewRequest(http.MethodDelete, "/tareas/"+id.Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}
