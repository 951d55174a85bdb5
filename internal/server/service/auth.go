package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин) и выпуск access-токенов
//   - запрос сброса пароля (выдача одноразового токена)
//   - сброс пароля по токену
type AuthService struct {
	users UsersRepo

	pass crypto.PasswordParams
	jwt  crypto.JWTConfig
}

// AuthResult — результат успешной регистрации или входа.
type AuthResult struct {
	Token string
	User  models.PublicUser
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,

		pass: crypto.PasswordParams{
			Hasher:     cfg.Password.Hasher,
			BcryptCost: cfg.Password.Bcrypt.Cost,
			Argon2: crypto.Argon2Params{
				Time:      cfg.Password.Argon2.Time,
				MemoryKiB: cfg.Password.Argon2.MemoryKiB,
				Threads:   cfg.Password.Argon2.Threads,
				KeyLen:    cfg.Password.Argon2.KeyLen,
				SaltLen:   cfg.Password.Argon2.SaltLen,
			},
		},
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},
	}
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - имя длиной >= 2 символов
//   - email обязателен и должен быть валидным (хранится в нижнем регистре)
//   - пароль длиной >= 6 символов
//
// Уникальность email проверяется дважды: предварительным поиском
// (дружелюбная ошибка) и уникальным индексом в базе (закрывает гонку).
//
// Возвращает access-токен и публичный вид пользователя или:
//   - ErrInvalidInput при некорректных данных;
//   - ErrAlreadyExists если email уже зарегистрирован.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if utf8.RuneCountInString(name) < 2 || !emailRe.MatchString(email) || len(password) < 6 {
		return AuthResult{}, serr.ErrInvalidInput
	}

	// предварительная проверка занятости email
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, serr.ErrAlreadyExists
	case !errors.Is(err, serr.ErrNotFound):
		return AuthResult{}, err
	}

	hash, err := crypto.HashPassword(password, s.pass)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	id, err := s.users.Create(ctx, models.NewUser(name, email, hash))
	if err != nil {
		return AuthResult{}, err
	}

	token, err := crypto.NewAccessToken(id.Hex(), s.jwt)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	return AuthResult{
		Token: token,
		User:  models.PublicUser{ID: id.Hex(), Name: name, Email: email},
	}, nil
}

// Login аутентифицирует пользователя и выдаёт access-токен.
//
// Поведение:
//   - не раскрывает факт существования email: и «нет такого пользователя»,
//     и «неверный пароль» снаружи выглядят одинаково.
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRe.MatchString(email) || password == "" {
		return AuthResult{}, serr.ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return AuthResult{}, serr.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// битый хэш — это внутренняя проблема, не «неверный пароль»
		return AuthResult{}, serr.ErrInternal
	}
	if !ok {
		return AuthResult{}, serr.ErrInvalidCredentials
	}

	token, err := crypto.NewAccessToken(user.ID.Hex(), s.jwt)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	return AuthResult{Token: token, User: user.Public()}, nil
}

// Me возвращает публичный вид пользователя по id из access-токена.
//
// Ошибки:
//   - ErrUnauthorized — subject токена не является валидным id;
//   - ErrNotFound — пользователь удалён после выдачи токена.
func (s *AuthService) Me(ctx context.Context, userID string) (models.PublicUser, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.PublicUser{}, serr.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

// ForgotPassword выдаёт одноразовый токен сброса пароля со сроком 24 часа.
//
// В отличие от Login этот метод раскрывает существование email (404),
// как и исходное API. Токен возвращается вызывающему напрямую —
// в проде его надо доставлять по внешнему каналу, а не в ответе.
//
// Ошибки:
//   - ErrInvalidInput — невалидный email;
//   - ErrNotFound — email не зарегистрирован.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRe.MatchString(email) {
		return "", serr.ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := crypto.NewResetToken()
	if err != nil {
		return "", serr.ErrInternal
	}

	expire := crypto.ResetTokenExpiry(time.Now().UTC())
	if err := s.users.SetResetToken(ctx, user.ID, token, expire); err != nil {
		return "", err
	}

	return token, nil
}

// ResetPassword меняет пароль по токену сброса.
//
// Состояния токена:
//   - токен не совпал ни с одним пользователем — ErrNotFound;
//   - запись без срока действия — ErrInvalidResetToken;
//   - срок истёк — ErrResetTokenExpired;
//   - иначе пароль обновляется, оба поля токена снимаются
//     тем же атомарным обновлением документа.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || len(newPassword) < 6 {
		return serr.ErrInvalidInput
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}

	if user.ResetTokenExpire == nil {
		return serr.ErrInvalidResetToken
	}
	if time.Now().UTC().After(*user.ResetTokenExpire) {
		return serr.ErrResetTokenExpired
	}

	hash, err := crypto.HashPassword(newPassword, s.pass)
	if err != nil {
		return serr.ErrInternal
	}

	return s.users.UpdatePasswordAndClearReset(ctx, user.ID, hash)
}
