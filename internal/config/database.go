// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

// DSN builds the postgres connection string. Sessions are pinned to UTC so
// trade timestamps compare consistently across replicas.
func (d *DatabaseConfig) DSN() string {
	parts := []string{
		"host=" + d.Host,
		"port=" + d.Port,
		"user=" + d.User,
		fmt.Sprintf("dbname=%s", d.Database),
		"sslmode=" + d.SSLMode,
		"TimeZone=UTC",
	}
	if d.Password != "" {
		parts = append(parts, "password="+d.Password)
	}
	return strings.Join(parts, " ")
}
