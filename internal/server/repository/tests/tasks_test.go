package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/IvanChernomyrdin/go-todo-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-todo-api/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-todo-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-todo-api/internal/shared/utils"
)

func TestTasksRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := repository.NewTasksRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		task, err := repo.Create(context.Background(), models.NewTask("Comprar pan", ""))
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if task.ID.IsZero() {
			mt.Fatal("expected assigned id")
		}
		if task.Estado != models.StatusPendiente {
			mt.Fatalf("expected status Pendiente, got %q", task.Estado)
		}
	})

	// пустая коллекция — пустой срез, не nil
	mt.Run("list empty", func(mt *mtest.T) {
		repo := repository.NewTasksRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "todo_db.tareas", mtest.FirstBatch))

		tasks, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			mt.Fatalf("expected empty non-nil slice, got %#v", tasks)
		}
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := repository.NewTasksRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "todo_db.tareas", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, serr.ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("get by id decodes document", func(mt *mtest.T) {
		repo := repository.NewTasksRepository(mt.DB)

		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "todo_db.tareas", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "descripcion", Value: "Comprar pan"},
			{Key: "fecha_creacion", Value: time.Now().UTC()},
			{Key: "estado", Value: "Realizada"},
		}))

		task, err := repo.GetByID(context.Background(), id)
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if task.ID != id || task.Estado != models.StatusRealizada {
			mt.Fatalf("unexpected task: %+v", task)
		}
	})

	// findAndModify без документа в ответе — задачи нет
	mt.Run("update not found", func(mt *mtest.T) {
		repo := repository.NewTasksRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := repo.Update(context.Background(), primitive.NewObjectID(), utils.StrPtr("uno"), nil)
		if !errors.Is(err, serr.ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	// в $set попадают только заданные поля
	mt.Run("update sets only provided fields", func(mt *mtest.T) {
		repo := repository.NewTasksRepository(mt.DB)

		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "descripcion", Value: "Comprar pan"},
				{Key: "fecha_creacion", Value: time.Now().UTC()},
				{Key: "estado", Value: "Ejecucion"},
			}},
		))

		estado := utils.Ptr(models.StatusEjecucion)
		task, err := repo.Update(context.Background(), id, nil, estado)
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if task.Estado != models.StatusEjecucion {
			mt.Fatalf("expected status Ejecucion, got %q", task.Estado)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "findAndModify" {
			mt.Fatalf("expected findAndModify command, got %+v", evt)
		}

		var cmd struct {
			Update struct {
				Set bson.M `bson:"$set"`
			} `bson:"update"`
			New bool `bson:"new"`
		}
		if err := bson.Unmarshal(evt.Command, &cmd); err != nil {
			mt.Fatalf("unmarshal command: %v", err)
		}
		if !cmd.New {
			mt.Fatal("expected document AFTER update to be requested")
		}
		if len(cmd.Update.Set) != 1 {
			mt.Fatalf("expected only estado in $set, got %v", cmd.Update.Set)
		}
		if cmd.Update.Set["estado"] != "Ejecucion" {
			mt.Fatalf("expected $set.estado, got %v", cmd.Update.Set)
		}
	})

	mt.Run("delete not found", func(mt *mtest.T) {
		repo := repository.NewTasksRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, serr.ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("delete success", func(mt *mtest.T) {
		repo := repository.NewTasksRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := repo.Delete(context.Background(), primitive.NewObjectID()); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
	})
}
