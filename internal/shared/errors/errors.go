// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// только для задач
var (
	// Некорректный идентификатор (не hex ObjectID)
	ErrInvalidID = errors.New("invalid id")
	// Пустое тело частичного обновления
	ErrEmptyUpdate = errors.New("empty update")
)

// только для сброса пароля
var (
	// Токен сброса без срока действия (битая запись)
	ErrInvalidResetToken = errors.New("invalid reset token")
	// Срок действия токена сброса истёк
	ErrResetTokenExpired = errors.New("reset token expired")
)
