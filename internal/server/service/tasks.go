package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
)

// TasksService реализует бизнес-логику работы с задачами.
// Сервис:
//   - валидирует входные данные;
//   - разбирает строковые идентификаторы;
//   - не знает о HTTP и БД напрямую.
type TasksService struct {
	repo TasksRepo
}

// NewTasksService создаёт новый TasksService.
func NewTasksService(repo TasksRepo) *TasksService {
	return &TasksService{repo: repo}
}

// Create создаёт задачу.
//
// Статус по умолчанию — Pendiente, время создания назначает сервер.
//
// Ошибки:
//   - ErrInvalidInput — пустое описание или неизвестный статус;
//   - ErrInternal — ошибка хранилища.
func (s *TasksService) Create(ctx context.Context, descripcion string, estado models.TaskStatus) (models.Task, error) {
	descripcion = strings.TrimSpace(descripcion)
	if descripcion == "" {
		return models.Task{}, serr.ErrInvalidInput
	}
	if estado != "" && !estado.Valid() {
		return models.Task{}, serr.ErrInvalidInput
	}

	return s.repo.Create(ctx, models.NewTask(descripcion, estado))
}

// List возвращает все задачи. Порядок — нативный порядок хранилища,
// контрактом не гарантируется.
func (s *TasksService) List(ctx context.Context) ([]models.Task, error) {
	return s.repo.List(ctx)
}

// Get возвращает задачу по строковому id.
//
// Ошибки:
//   - ErrInvalidID — id не является hex ObjectID;
//   - ErrNotFound — задачи нет.
func (s *TasksService) Get(ctx context.Context, id string) (models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Task{}, serr.ErrInvalidID
	}
	return s.repo.GetByID(ctx, oid)
}

// Update применяет частичное обновление: незаданные поля не трогаются.
//
// Ошибки:
//   - ErrInvalidID — id не является hex ObjectID;
//   - ErrEmptyUpdate — не задано ни одно поле;
//   - ErrInvalidInput — пустое описание или неизвестный статус;
//   - ErrNotFound — задачи нет.
func (s *TasksService) Update(ctx context.Context, id string, descripcion *string, estado *models.TaskStatus) (models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Task{}, serr.ErrInvalidID
	}

	if descripcion == nil && estado == nil {
		return models.Task{}, serr.ErrEmptyUpdate
	}
	if descripcion != nil && strings.TrimSpace(*descripcion) == "" {
		return models.Task{}, serr.ErrInvalidInput
	}
	if estado != nil && !estado.Valid() {
		return models.Task{}, serr.ErrInvalidInput
	}

	return s.repo.Update(ctx, oid, descripcion, estado)
}

// Delete удаляет задачу по строковому id.
//
// Ошибки:
//   - ErrInvalidID — id не является hex ObjectID;
//   - ErrNotFound — задачи нет.
func (s *TasksService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return serr.ErrInvalidID
	}
	return s.repo.Delete(ctx, oid)
}
