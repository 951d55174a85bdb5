// Package repository реализует доступ к MongoDB.
// Репозитории отвечают исключительно за сохранение и извлечение данных,
// без бизнес-логики.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
)

type UsersRepository struct {
	col *mongo.Collection
}

func NewUsersRepository(db *mongo.Database) *UsersRepository {
	return &UsersRepository{col: db.Collection(config.CollectionUsuarios)}
}

// Create вставляет нового пользователя и возвращает назначенный id.
//
// Ошибки:
//   - ErrAlreadyExists — duplicate key по уникальному индексу email
//     (гонка read-then-write проигрывается сюда);
//   - ErrInternal — прочие ошибки базы.
func (r *UsersRepository) Create(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, serr.ErrAlreadyExists
		}
		return primitive.NilObjectID, serr.ErrInternal
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, serr.ErrInternal
	}
	return id, nil
}

// GetByEmail ищет пользователя по email (ожидается нижний регистр).
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID ищет пользователя по идентификатору.
func (r *UsersRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByResetToken ищет пользователя по точному совпадению токена сброса.
func (r *UsersRepository) GetByResetToken(ctx context.Context, token string) (models.User, error) {
	return r.findOne(ctx, bson.M{"reset_token": token})
}

// SetResetToken записывает токен сброса и его срок действия одним $set.
func (r *UsersRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expire time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"reset_token":        token,
			"reset_token_expire": expire,
		}},
	)
	if err != nil {
		return serr.ErrInternal
	}
	if res.MatchedCount == 0 {
		return serr.ErrNotFound
	}
	return nil
}

// UpdatePasswordAndClearReset одним атомарным обновлением ставит новый хэш
// пароля и снимает оба поля токена сброса. Полуобновлённого документа
// не бывает: MongoDB гарантирует атомарность в пределах одного документа.
func (r *UsersRepository) UpdatePasswordAndClearReset(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{"password": passwordHash},
			"$unset": bson.M{
				"reset_token":        "",
				"reset_token_expire": "",
			},
		},
	)
	if err != nil {
		return serr.ErrInternal
	}
	if res.MatchedCount == 0 {
		return serr.ErrNotFound
	}
	return nil
}

func (r *UsersRepository) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}
	return user, nil
}
