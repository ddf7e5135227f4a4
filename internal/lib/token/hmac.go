package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HMACExtractor извлекает идентичность только из токенов с корректной
// подписью HS256. Подключается вместо UnverifiedExtractor через
// конфигурацию, вызывающий код при этом не меняется.
type HMACExtractor struct {
	secretKey []byte
}

// NewHMACExtractor создаёт HMACExtractor с заданным секретным ключом.
func NewHMACExtractor(secretKey string) *HMACExtractor {
	return &HMACExtractor{secretKey: []byte(secretKey)}
}

// Extract парсит токен, проверяет подпись и возвращает Identity из claims.
func (e *HMACExtractor) Extract(tokenStr string) (*Identity, error) {
	const op = "token.HMACExtractor.Extract"

	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return e.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrExtractionFailed, err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrExtractionFailed)
	}
	return identityFromClaims(claims), nil
}
