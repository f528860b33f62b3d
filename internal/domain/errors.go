package domain

import "errors"

// Доменные ошибки сервиса проектов
var (
	// ErrInvalidProjectID возвращается когда ID проекта не является положительным целым числом
	ErrInvalidProjectID = errors.New("invalid project id")

	// ErrInvalidProjectName возвращается когда название проекта пустое или слишком длинное
	ErrInvalidProjectName = errors.New("invalid project name")

	// ErrInvalidProjectType возвращается когда ID типа проекта не положительный
	ErrInvalidProjectType = errors.New("invalid project type")

	// ErrProjectNotFound возвращается когда проект не найден
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectTypeNotFound возвращается когда тип проекта не найден
	ErrProjectTypeNotFound = errors.New("project type not found")

	// ErrMemberNotFound возвращается когда участник не найден
	ErrMemberNotFound = errors.New("member not found")

	// ErrMemberExists возвращается при попытке создать участника с уже занятым внешним ID
	ErrMemberExists = errors.New("member already exists")

	// ErrMemberProjectExists возвращается при повторной привязке участника к проекту
	ErrMemberProjectExists = errors.New("member is already linked to project")

	// ErrNoAccess возвращается когда у запроса нет claim'а идентичности
	ErrNoAccess = errors.New("no access")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeBadRequest    ErrorCode = "BAD_REQUEST"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeForbidden     ErrorCode = "FORBIDDEN"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeAlreadyMember ErrorCode = "ALREADY_MEMBER" // Участник уже привязан к проекту
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidProjectID), errors.Is(err, ErrInvalidProjectName),
		errors.Is(err, ErrInvalidProjectType):
		return CodeBadRequest
	case errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrProjectTypeNotFound),
		errors.Is(err, ErrMemberNotFound):
		return CodeNotFound
	case errors.Is(err, ErrNoAccess):
		return CodeForbidden
	case errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	case errors.Is(err, ErrMemberProjectExists):
		return CodeAlreadyMember
	default:
		return CodeInternal
	}
}
