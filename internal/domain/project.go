package domain

// Ограничения длины, совпадают со схемой БД
const (
	MaxProjectNameLength     = 100
	MaxProjectTypeNameLength = 32
)

// ProjectType представляет элемент справочника типов проектов
type ProjectType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProjectDetail представляет проект вместе с его типом (без аудит-полей)
type ProjectDetail struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	TypeID   int    `json:"typeId"`
	TypeName string `json:"typeName"`
}

// ProjectSummary представляет сокращенную информацию о проекте (используется в списках)
type ProjectSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProjectStats представляет проекты, к которым привязан участник
type ProjectStats struct {
	UserID         int              `json:"userId"`
	ExternalUserID string           `json:"externalUserId"`
	ProjectStats   []ProjectSummary `json:"projectStats"`
}

// NewProject описывает запрос на создание проекта.
// Тип задается через TypeID или, если он нулевой, через TypeName
type NewProject struct {
	Name     string `json:"name"`
	TypeID   int    `json:"typeId"`
	TypeName string `json:"typeName"`
}
