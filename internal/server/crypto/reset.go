package crypto

import (
	"crypto/rand"
	"time"
)

// ResetTokenLength — длина токена сброса пароля в символах.
const ResetTokenLength = 32

// ResetTokenTTL — срок жизни токена сброса.
const ResetTokenTTL = 24 * time.Hour

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewResetToken генерирует случайный алфавитно-цифровой токен сброса пароля.
//
// Источник случайности — crypto/rand. Байты >= limit отбрасываются:
// 62 не делит 256 нацело, и остаток по модулю смещал бы распределение
// в пользу первых символов алфавита. Токен хранится в документе
// пользователя как есть и сравнивается точным совпадением.
func NewResetToken() (string, error) {
	const limit = 256 - 256%len(alphanumeric)

	out := make([]byte, 0, ResetTokenLength)
	buf := make([]byte, ResetTokenLength)
	for len(out) < ResetTokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, v := range buf {
			if int(v) >= limit {
				continue
			}
			out = append(out, alphanumeric[int(v)%len(alphanumeric)])
			if len(out) == ResetTokenLength {
				break
			}
		}
	}
	return string(out), nil
}

// ResetTokenExpiry возвращает момент истечения токена, выданного в now.
func ResetTokenExpiry(now time.Time) time.Time {
	return now.Add(ResetTokenTTL)
}
