// Модель задачи и её статуса
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus — закрытый перечисляемый тип статуса задачи.
//
// Допустимые значения: Pendiente, Ejecucion, Realizada.
// Любое другое значение отклоняется при декодировании JSON.
type TaskStatus string

const (
	StatusPendiente TaskStatus = "Pendiente"
	StatusEjecucion TaskStatus = "Ejecucion"
	StatusRealizada TaskStatus = "Realizada"
)

// Valid сообщает, входит ли значение в перечисление.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPendiente, StatusEjecucion, StatusRealizada:
		return true
	}
	return false
}

// UnmarshalJSON декодирует статус строго: неизвестные значения — ошибка.
// Так невалидный статус не доходит до базы.
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := TaskStatus(raw)
	if !v.Valid() {
		return fmt.Errorf("unknown task status %q", raw)
	}
	*s = v
	return nil
}

// Task — документ задачи в коллекции tareas.
//
// Поля:
//   - ID: идентификатор, назначается MongoDB при вставке;
//   - Descripcion: текст задачи (непустой);
//   - FechaCreacion: время создания, неизменяемое;
//   - Estado: статус задачи (TaskStatus).
type Task struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Descripcion   string             `bson:"descripcion" json:"descripcion"`
	FechaCreacion time.Time          `bson:"fecha_creacion" json:"fecha_creacion"`
	Estado        TaskStatus         `bson:"estado" json:"estado"`
}

// NewTask создаёт задачу с серверным временем создания.
// Пустой статус заменяется на Pendiente.
func NewTask(descripcion string, estado TaskStatus) Task {
	if estado == "" {
		estado = StatusPendiente
	}
	return Task{
		Descripcion:   descripcion,
		FechaCreacion: time.Now().UTC(),
		Estado:        estado,
	}
}
