// Package migrations содержит SQL миграции схемы БД, встроенные в бинарник
package migrations

import "embed"

// FS содержит все файлы миграций (*.up.sql и *.down.sql)
//
//go:embed *.sql
var FS embed.FS
