// Package http реализует маршрутизацию HTTP-слоя сервера.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - проверку JWT access-токенов на защищённых путях.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - CRUD задач под префиксом /tareas (публичные, как в исходном API);
//   - эндпоинты аутентификации под префиксом /auth;
//   - защищённый JWT эндпоинт /auth/me;
//   - middleware логирования для всех запросов.
func NewRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов тем же логгером, что и у хендлеров
	r.Use(middleware.LoggerMiddleware(h.Log))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// CRUD запросы для задач
	r.Route("/tareas", func(r chi.Router) {
		r.Post("/", h.CreateTask)       // Создание задачи
		r.Get("/", h.ListTasks)         // Получение всех задач
		r.Get("/{id}", h.GetTask)       // Получение задачи по id
		r.Put("/{id}", h.UpdateTask)    // Частичное обновление
		r.Delete("/{id}", h.DeleteTask) // Удаление
	})

	// Публичные пути аутентификации
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)

		// защищённый путь: проверка access токена
		r.Group(func(r chi.Router) {
			r.Use(h.Verifier.AuthMiddleware())
			r.Get("/me", h.Me)
		})
	})

	return r
}
