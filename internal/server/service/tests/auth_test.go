package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

// testConfig — конфиг для тестов: дешёвый bcrypt, фиксированный ключ.
func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Issuer = "todo-api"
	cfg.Auth.Audience = "todo-client"
	cfg.Auth.AccessTTL = 7 * 24 * time.Hour
	cfg.Auth.JWT.Algorithm = "HS256"
	cfg.Auth.JWT.SigningKey = "supersecretkeysupersecretkey123456"
	cfg.Password.Hasher = "bcrypt"
	cfg.Password.Bcrypt.Cost = 4
	return cfg
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := crypto.HashPassword(password, crypto.PasswordParams{
		Hasher:     crypto.HasherBcrypt,
		BcryptCost: 4,
	})
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return hash
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"short name", "A", "bob@example.com", "secret1"},
		{"empty email", "Bob", "", "secret1"},
		{"email without domain", "Bob", "bob@", "secret1"},
		{"email without at", "Bob", "bob.example.com", "secret1"},
		{"short password", "Bob", "bob@example.com", "12345"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password)
			if !errors.Is(err, serr.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	existing := models.NewUser("Bob", "bob@example.com", hashFor(t, "secret1"))
	users.EXPECT().
		GetByEmail(gomock.Any(), "bob@example.com").
		Return(existing, nil)

	_, err := svc.Register(context.Background(), "Bob", "Bob@Example.COM", "secret1")
	if !errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	id := primitive.NewObjectID()

	users.EXPECT().
		GetByEmail(gomock.Any(), "bob@example.com").
		Return(models.User{}, serr.ErrNotFound)
	users.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (primitive.ObjectID, error) {
			if user.Email != "bob@example.com" {
				t.Fatalf("expected lowercased email, got %q", user.Email)
			}
			if user.Name != "Bob" {
				t.Fatalf("expected name Bob, got %q", user.Name)
			}
			// в базу должен уходить хэш, а не исходный пароль
			if user.PasswordHash == "secret1" || user.PasswordHash == "" {
				t.Fatalf("password must be stored hashed, got %q", user.PasswordHash)
			}
			return id, nil
		})

	got, err := svc.Register(context.Background(), "  Bob  ", " Bob@Example.COM ", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if got.User.ID != id.Hex() {
		t.Fatalf("expected user id %q, got %q", id.Hex(), got.User.ID)
	}
	if got.User.Email != "bob@example.com" {
		t.Fatalf("expected email bob@example.com, got %q", got.User.Email)
	}
}

func TestLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	users.EXPECT().
		GetByEmail(gomock.Any(), "ghost@example.com").
		Return(models.User{}, serr.ErrNotFound)

	_, err := svc.Login(context.Background(), "ghost@example.com", "secret1")
	if !errors.Is(err, serr.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	user := models.NewUser("Bob", "bob@example.com", hashFor(t, "secret1"))
	user.ID = primitive.NewObjectID()

	users.EXPECT().
		GetByEmail(gomock.Any(), "bob@example.com").
		Return(user, nil)

	_, err := svc.Login(context.Background(), "bob@example.com", "wrong-password")
	if !errors.Is(err, serr.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	user := models.NewUser("Bob", "bob@example.com", hashFor(t, "secret1"))
	user.ID = primitive.NewObjectID()

	users.EXPECT().
		GetByEmail(gomock.Any(), "bob@example.com").
		Return(user, nil)

	got, err := svc.Login(context.Background(), "Bob@Example.COM", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if got.User.ID != user.ID.Hex() {
		t.Fatalf("expected user id %q, got %q", user.ID.Hex(), got.User.ID)
	}
}

func TestMe_BadSubject(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	_, err := svc.Me(context.Background(), "not-an-object-id")
	if !errors.Is(err, serr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestMe_Success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	user := models.NewUser("Bob", "bob@example.com", hashFor(t, "secret1"))
	user.ID = primitive.NewObjectID()

	users.EXPECT().
		GetByID(gomock.Any(), user.ID).
		Return(user, nil)

	got, err := svc.Me(context.Background(), user.ID.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "bob@example.com" {
		t.Fatalf("expected email bob@example.com, got %q", got.Email)
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	users.EXPECT().
		GetByEmail(gomock.Any(), "ghost@example.com").
		Return(models.User{}, serr.ErrNotFound)

	_, err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestForgotPassword_Success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	user := models.NewUser("Bob", "bob@example.com", hashFor(t, "secret1"))
	user.ID = primitive.NewObjectID()

	users.EXPECT().
		GetByEmail(gomock.Any(), "bob@example.com").
		Return(user, nil)

	var savedToken string
	users.EXPECT().
		SetResetToken(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ primitive.ObjectID, token string, expire time.Time) error {
			savedToken = token
			if len(token) != crypto.ResetTokenLength {
				t.Fatalf("expected token of length %d, got %d", crypto.ResetTokenLength, len(token))
			}
			// срок жизни токена — примерно 24 часа
			left := time.Until(expire)
			if left < 23*time.Hour || left > 25*time.Hour {
				t.Fatalf("unexpected expiry window: %v", left)
			}
			return nil
		})

	token, err := svc.ForgotPassword(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != savedToken {
		t.Fatalf("returned token %q differs from stored %q", token, savedToken)
	}
}

func TestResetPassword_InvalidInput(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	if err := svc.ResetPassword(context.Background(), "", "secret1"); !errors.Is(err, serr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty token, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "sometoken", "123"); !errors.Is(err, serr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestResetPassword_UnknownToken(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	users.EXPECT().
		GetByResetToken(gomock.Any(), "unknown-token").
		Return(models.User{}, serr.ErrNotFound)

	err := svc.ResetPassword(context.Background(), "unknown-token", "secret2")
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResetPassword_NoExpiry(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	user := models.NewUser("Bob", "bob@example.com", hashFor(t, "secret1"))
	user.ID = primitive.NewObjectID()
	// запись без срока действия — битое состояние

	users.EXPECT().
		GetByResetToken(gomock.Any(), "sometoken").
		Return(user, nil)

	err := svc.ResetPassword(context.Background(), "sometoken", "secret2")
	if !errors.Is(err, serr.ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken, got %v", err)
	}
}

func TestResetPassword_Expired(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	user := models.NewUser("Bob", "bob@example.com", hashFor(t, "secret1"))
	user.ID = primitive.NewObjectID()
	expired := time.Now().UTC().Add(-time.Hour)
	user.ResetTokenExpire = &expired

	users.EXPECT().
		GetByResetToken(gomock.Any(), "sometoken").
		Return(user, nil)

	err := svc.ResetPassword(context.Background(), "sometoken", "secret2")
	if !errors.Is(err, serr.ErrResetTokenExpired) {
		t.Fatalf("expected ErrResetTokenExpired, got %v", err)
	}
}

func TestResetPassword_Success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testConfig())

	user := models.NewUser("Bob", "bob@example.com", hashFor(t, "secret1"))
	user.ID = primitive.NewObjectID()
	expire := time.Now().UTC().Add(12 * time.Hour)
	user.ResetTokenExpire = &expire

	users.EXPECT().
		GetByResetToken(gomock.Any(), "sometoken").
		Return(user, nil)
	users.EXPECT().
		UpdatePasswordAndClearReset(gomock.Any(), user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ primitive.ObjectID, passwordHash string) error {
			ok, err := crypto.VerifyPassword("new-secret", passwordHash)
			if err != nil || !ok {
				t.Fatalf("stored hash does not match new password (ok=%v, err=%v)", ok, err)
			}
			return nil
		})

	if err := svc.ResetPassword(context.Background(), "sometoken", "new-secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
