package domain

// MaxExternalUserIDLength максимальная длина внешнего ID пользователя
const MaxExternalUserIDLength = 128

// Member представляет участника, связанного с внешней учетной записью
type Member struct {
	ID             int
	ExternalUserID string
}

// MemberProject представляет связь участника с проектом.
// Связь адресуется только по ID, без взаимных ссылок между сущностями
type MemberProject struct {
	MemberID  int
	ProjectID int
}
