// Серверная модель пользователя
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User — документ пользователя в коллекции usuarios.
//
// PasswordHash, ResetToken и ResetTokenExpire никогда не сериализуются в JSON.
// ResetToken и ResetTokenExpire либо оба присутствуют, либо оба отсутствуют:
// ставятся одним $set при запросе сброса и снимаются одним $unset
// вместе с обновлением пароля.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"password" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	ResetToken       *string            `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpire *time.Time         `bson:"reset_token_expire,omitempty" json:"-"`
}

// PublicUser — публичная проекция пользователя, безопасная для ответа клиенту.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser создаёт пользователя с серверным временем создания.
// email ожидается уже приведённым к нижнему регистру.
func NewUser(name, email, passwordHash string) User {
	return User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// Public возвращает проекцию без чувствительных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}
