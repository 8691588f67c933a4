package domain

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// idPattern описывает формат идентификатора: 24 шестнадцатеричных символа
var idPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// NewID генерирует новый идентификатор сущности
func NewID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand не возвращает ошибок на поддерживаемых платформах
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// IsValidID проверяет что строка является корректным идентификатором
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
