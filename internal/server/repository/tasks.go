package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
)

// TasksRepository реализует доступ к коллекции tareas.
type TasksRepository struct {
	col *mongo.Collection
}

// NewTasksRepository создаёт новый экземпляр TasksRepository.
func NewTasksRepository(db *mongo.Database) *TasksRepository {
	return &TasksRepository{col: db.Collection(config.CollectionTareas)}
}

// Create вставляет новую задачу и возвращает её с назначенным id.
func (r *TasksRepository) Create(ctx context.Context, task models.Task) (models.Task, error) {
	res, err := r.col.InsertOne(ctx, task)
	if err != nil {
		return models.Task{}, serr.ErrInternal
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.Task{}, serr.ErrInternal
	}
	task.ID = id
	return task, nil
}

// List возвращает все задачи в нативном порядке хранилища.
func (r *TasksRepository) List(ctx context.Context) ([]models.Task, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer cursor.Close(ctx)

	tasks := make([]models.Task, 0)
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, serr.ErrInternal
	}
	return tasks, nil
}

// GetByID возвращает задачу по идентификатору.
//
// Ошибки:
//   - ErrNotFound — документа нет;
//   - ErrInternal — ошибка базы.
func (r *TasksRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var task models.Task
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, serr.ErrNotFound
		}
		return models.Task{}, serr.ErrInternal
	}
	return task, nil
}

// Update применяет частичное обновление: в $set попадают только заданные
// поля, остальные не трогаются. Возвращает документ ПОСЛЕ обновления.
//
// Ошибки:
//   - ErrNotFound — ни один документ не подошёл под фильтр;
//   - ErrInternal — ошибка базы.
func (r *TasksRepository) Update(ctx context.Context, id primitive.ObjectID, descripcion *string, estado *models.TaskStatus) (models.Task, error) {
	set := bson.M{}
	if descripcion != nil {
		set["descripcion"] = *descripcion
	}
	if estado != nil {
		set["estado"] = *estado
	}

	var task models.Task
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, serr.ErrNotFound
		}
		return models.Task{}, serr.ErrInternal
	}
	return task, nil
}

// Delete удаляет задачу по идентификатору.
//
// Ошибки:
//   - ErrNotFound — ничего не удалено;
//   - ErrInternal — ошибка базы.
func (r *TasksRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return serr.ErrInternal
	}
	if res.DeletedCount == 0 {
		return serr.ErrNotFound
	}
	return nil
}
