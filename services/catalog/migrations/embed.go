// Package migrations содержит goose SQL миграции Catalog Service.
// Файлы встраиваются в бинарник и применяются при старте приложения.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
