// Package config содержит инициализацию подключения к базе данных сервера
// и доступ к глобальному экземпляру *mongo.Database.
//
// Пакет выполняет:
//   - открытие соединения с MongoDB;
//   - проверку доступности базы (Ping);
//   - создание индексов (уникальный email) при старте сервера.
//
// Примечание: пакет использует глобальные переменные client/DB. Инициализация
// должна выполняться один раз при запуске сервера.
package config

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IvanChernomyrdin/go-todo-api/internal/shared/logger"
)

// Имена коллекций. Совпадают с путями HTTP API.
const (
	CollectionTareas   = "tareas"
	CollectionUsuarios = "usuarios"
)

var (
	client *mongo.Client
	// DB — глобальный экземпляр подключения к базе данных.
	//
	// Инициализируется функцией InitMongo и используется другими пакетами через GetDB.
	DB *mongo.Database
)

// InitMongo открывает подключение к MongoDB по URI, проверяет его доступность
// и создаёт индексы.
//
// Уникальный индекс на usuarios.email закрывает гонку read-then-write
// при регистрации: проигравшая вставка получает duplicate key (11000).
// Разреженный индекс на usuarios.reset_token ускоряет поиск при сбросе пароля.
func InitMongo(ctx context.Context, cfg DBConfig, log *logger.HTTPLogger) error {
	customLog := log.Sugar()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	var err error
	// общий таймаут на операции задаётся на уровне клиента,
	// отдельной логики таймаутов в репозиториях нет
	client, err = mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.QueryTimeout))
	if err != nil {
		customLog.Errorf("error to connect db: %v", err)
		return err
	}

	if err = client.Ping(connectCtx, nil); err != nil {
		customLog.Errorf("error check db connection: %v", err)
		return err
	}

	DB = client.Database(cfg.Database)

	// Индексы создаются идемпотентно, повторный запуск не ошибка
	usuarios := DB.Collection(CollectionUsuarios)
	_, err = usuarios.Indexes().CreateMany(connectCtx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "reset_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		customLog.Errorf("error creating indexes: %v", err)
		return err
	}

	customLog.Info("mongodb connected, indexes ensured")
	return nil
}

// GetDB возвращает текущий глобальный экземпляр *mongo.Database.
//
// Возвращаемое значение может быть nil, если InitMongo ещё не вызывался
// или завершился ошибкой.
func GetDB() *mongo.Database {
	return DB
}

// CloseMongo закрывает подключение к MongoDB.
func CloseMongo(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
