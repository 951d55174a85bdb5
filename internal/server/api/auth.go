// HTTP-хендлеры регистрации, логина и сброса пароля
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest описывает тело запроса сброса пароля.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest описывает тело запроса установки нового пароля.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AuthResponse — конверт ответов /auth/register и /auth/login.
// Формат совместим с исходным API: success/message присутствуют всегда,
// token и user — только при успехе.
type AuthResponse struct {
	Success bool               `json:"success"`
	Token   *string            `json:"token,omitempty"`
	User    *models.PublicUser `json:"user,omitempty"`
	Message string             `json:"message"`
}

// ForgotPasswordResponse — ответ /auth/forgot-password.
//
// reset_token возвращается прямо в теле — это осознанно сохранённое
// поведение исходного API для разработки, в проде токен должен уходить
// по внешнему каналу.
type ForgotPasswordResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
	Note       string `json:"note,omitempty"`
}

// ResetPasswordResponse — ответ /auth/reset-password.
type ResetPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeAuthFail пишет конверт с success=false и заданным сообщением.
func writeAuthFail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, AuthResponse{Success: false, Message: message})
}

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна, в ответе токен и публичный вид;
//   - 400 Bad Request: неверный JSON, невалидные данные или занятый email;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates a new user, returns a JWT and the public user view.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Register request"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} AuthResponse "Invalid input or email taken"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthFail(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	res, err := h.Svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			writeAuthFail(w, http.StatusBadRequest, "Datos inválidos")
		case errors.Is(err, serr.ErrAlreadyExists):
			writeAuthFail(w, http.StatusBadRequest, "El email ya está registrado")
		default:
			h.Log.Logger.Sugar().Errorw("register failed",
				"error", err,
				"request_id", middleware.RequestIDFromContext(r.Context()),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Token:   &res.Token,
		User:    &res.User,
		Message: "Usuario registrado exitosamente",
	})
}

// Login обрабатывает вход пользователя и выдачу access-токена.
//
// Несуществующий email и неверный пароль снаружи неотличимы (оба 401),
// чтобы не раскрывать базу пользователей.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 401 Unauthorized: неверные учётные данные;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Authenticates a user and returns a JWT.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} AuthResponse "Invalid input"
// @Failure      401 {object} AuthResponse "Invalid credentials"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthFail(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	res, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			writeAuthFail(w, http.StatusBadRequest, "Datos inválidos")
		case errors.Is(err, serr.ErrInvalidCredentials):
			writeAuthFail(w, http.StatusUnauthorized, "Credenciales incorrectas")
		default:
			h.Log.Logger.Sugar().Errorw("login failed",
				"error", err,
				"request_id", middleware.RequestIDFromContext(r.Context()),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Token:   &res.Token,
		User:    &res.User,
		Message: "Inicio de sesión exitoso",
	})
}

// ForgotPassword выдаёт одноразовый токен сброса пароля.
//
// В отличие от Login раскрывает существование email (404 против 200) —
// поведение исходного API сохранено сознательно.
//
// Ответы:
//   - 200 OK: токен выдан и возвращён в теле;
//   - 400 Bad Request: невалидный email;
//   - 404 Not Found: email не зарегистрирован;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Request password reset
// @Description  Issues a single-use reset token valid for 24 hours.
// @Description  The token is returned inline for development convenience.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Forgot password request"
// @Success      200 {object} ForgotPasswordResponse
// @Failure      400 {object} ForgotPasswordResponse "Invalid email"
// @Failure      404 {object} ForgotPasswordResponse "Email not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/forgot-password [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, ForgotPasswordResponse{Success: false, Message: "Email inválido"})
		return
	}

	token, err := h.Svc.Auth.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteJSON(w, http.StatusBadRequest, ForgotPasswordResponse{Success: false, Message: "Email inválido"})
		case errors.Is(err, serr.ErrNotFound):
			WriteJSON(w, http.StatusNotFound, ForgotPasswordResponse{Success: false, Message: "Email no encontrado"})
		default:
			h.Log.Logger.Sugar().Errorw("forgot password failed",
				"error", err,
				"request_id", middleware.RequestIDFromContext(r.Context()),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, ForgotPasswordResponse{
		Success:    true,
		Message:    "Token de reseteo generado",
		ResetToken: token,
		Note:       "En producción, este token se enviaría por email",
	})
}

// ResetPassword меняет пароль по токену сброса.
//
// Ответы:
//   - 200 OK: пароль обновлён, токен сброса погашен;
//   - 400 Bad Request: невалидные данные, битый или просроченный токен;
//   - 404 Not Found: токен не совпал ни с одним пользователем;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Reset password
// @Description  Sets a new password using a previously issued reset token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Reset password request"
// @Success      200 {object} ResetPasswordResponse
// @Failure      400 {object} ResetPasswordResponse "Invalid input or expired token"
// @Failure      404 {object} ResetPasswordResponse "Unknown token"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, ResetPasswordResponse{Success: false, Message: "Datos inválidos"})
		return
	}

	err := h.Svc.Auth.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteJSON(w, http.StatusBadRequest, ResetPasswordResponse{Success: false, Message: "Datos inválidos"})
		case errors.Is(err, serr.ErrNotFound):
			WriteJSON(w, http.StatusNotFound, ResetPasswordResponse{Success: false, Message: "Token inválido"})
		case errors.Is(err, serr.ErrInvalidResetToken):
			WriteJSON(w, http.StatusBadRequest, ResetPasswordResponse{Success: false, Message: "Token inválido"})
		case errors.Is(err, serr.ErrResetTokenExpired):
			WriteJSON(w, http.StatusBadRequest, ResetPasswordResponse{Success: false, Message: "El token ha expirado"})
		default:
			h.Log.Logger.Sugar().Errorw("reset password failed",
				"error", err,
				"request_id", middleware.RequestIDFromContext(r.Context()),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, ResetPasswordResponse{
		Success: true,
		Message: "Contraseña actualizada exitosamente",
	})
}

// Me возвращает публичный вид аутентифицированного пользователя.
//
// Требует JWT-аутентификацию (AuthMiddleware).
//
// Ответы:
//   - 200 OK: публичный вид пользователя;
//   - 401 Unauthorized: токен отсутствует или недействителен;
//   - 404 Not Found: пользователь удалён после выдачи токена;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Current user
// @Description  Returns the public view of the authenticated user.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.PublicUser
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	user, err := h.Svc.Auth.Me(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrUnauthorized):
			WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("me failed",
				"error", err,
				"request_id", middleware.RequestIDFromContext(r.Context()),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, user)
}
