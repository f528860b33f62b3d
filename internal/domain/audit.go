package domain

import "time"

// Operation описывает вид изменения, записываемый в аудит-колонки
type Operation string

// OperationInsert единственная операция, которую выполняет сервис
const OperationInsert Operation = "insert"

// WriteMeta метаданные записи (operator_id, operation, operated_at),
// передаются в каждый изменяющий вызов хранилища
type WriteMeta struct {
	Operator  int
	Operation Operation
	Timestamp time.Time
}

// NewInsertMeta создает метаданные вставки от имени operator
func NewInsertMeta(operator int) WriteMeta {
	return WriteMeta{
		Operator:  operator,
		Operation: OperationInsert,
		Timestamp: time.Now().UTC(),
	}
}
