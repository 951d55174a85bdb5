// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users UsersRepo
	Tasks TasksRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth  *AuthService
	Tasks *TasksService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хэширования пароля и подписи JWT).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:  NewAuthService(repos.Users, cfg),
		Tasks: NewTasksService(repos.Tasks),
	}
}

// UsersRepo — репозиторий пользователей (регистрация, вход, сброс пароля).
type UsersRepo interface {
	Create(ctx context.Context, user models.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByResetToken(ctx context.Context, token string) (models.User, error)
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expire time.Time) error
	UpdatePasswordAndClearReset(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// TasksRepo — репозиторий задач (CRUD).
type TasksRepo interface {
	Create(ctx context.Context, task models.Task) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error)
	Update(ctx context.Context, id primitive.ObjectID, descripcion *string, estado *models.TaskStatus) (models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
