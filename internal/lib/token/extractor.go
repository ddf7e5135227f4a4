// Package token извлекает идентичность пользователя из bearer-токена.
//
// Extractor определяет интерфейс извлечения; UnverifiedExtractor — реализация,
// которая декодирует payload токена без проверки подписи (поведение, с которым
// сервис работает по умолчанию), HMACExtractor — реализация с проверкой
// подписи HS256 через golang-jwt.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Ошибки извлечения идентичности.
var (
	// ErrInvalidTokenFormat — токен содержит меньше двух сегментов.
	ErrInvalidTokenFormat = errors.New("invalid token format")
	// ErrExtractionFailed — payload не удалось декодировать или разобрать.
	ErrExtractionFailed = errors.New("failed to extract identity from token")
)

// Identity — идентичность пользователя, восстановленная из claims токена.
// Живёт только в контексте запроса и нигде не сохраняется.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Extractor описывает интерфейс извлечения идентичности из строки токена.
type Extractor interface {
	Extract(tokenStr string) (*Identity, error)
}

// UnverifiedExtractor разбирает claims токена, не проверяя его подпись:
// сервис доверяет утверждениям клиента как есть.
type UnverifiedExtractor struct{}

// NewUnverifiedExtractor создает новый UnverifiedExtractor.
func NewUnverifiedExtractor() *UnverifiedExtractor {
	return &UnverifiedExtractor{}
}

// Extract разбивает токен по точкам, декодирует второй сегмент как
// URL-safe base64 (padding не обязателен) и читает из него email, name
// и picture. Отсутствующие или нестроковые поля заменяются пустой строкой.
func (e *UnverifiedExtractor) Extract(tokenStr string) (*Identity, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) < 2 {
		return nil, ErrInvalidTokenFormat
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return identityFromClaims(claims), nil
}

func identityFromClaims(claims map[string]any) *Identity {
	return &Identity{
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Picture: stringClaim(claims, "picture"),
	}
}

func stringClaim(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}
