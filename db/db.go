// Package db embeds the schema migrations and the RBAC seed catalog.
package db

import "embed"

// Migrations holds the ordered NNNN_name.{up,down}.sql files.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// RBACSeed is the default role/permission catalog applied by `migrate seed`.
//
//go:embed seed/rbac.yaml
var RBACSeed []byte
