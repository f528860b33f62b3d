package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseProjectID разбирает ID проекта из параметра пути.
// Допустимы только целые числа больше нуля
func ParseProjectID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, ErrInvalidProjectID
	}
	return id, nil
}

// ValidateProjectName проверяет название проекта и возвращает его без крайних пробелов
func ValidateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxProjectNameLength {
		return "", ErrInvalidProjectName
	}
	return name, nil
}

// NormalizeClaim приводит claim идентичности к каноническому виду.
// Пустая строка означает, что claim отсутствует
func NormalizeClaim(claim string) string {
	claim = strings.TrimSpace(claim)
	if strings.EqualFold(claim, "null") {
		return ""
	}
	return claim
}
