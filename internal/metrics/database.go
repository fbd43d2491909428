package metrics

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// studioTables bounds the table label to the entity store's own tables
var studioTables = map[string]bool{
	"users":       true,
	"clients":     true,
	"designs":     true,
	"mood_boards": true,
	"images":      true,
	"messages":    true,
	"preferences": true,
}

// UpdateDBStats mirrors the entity store's connection pool
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
	})
}

// RecordDBQuery observes one entity store statement.
// A lookup that finds no row is a normal miss (FindByID on a deleted design), not a query error.
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		table = tableLabel(table)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}

func tableLabel(table string) string {
	table = strings.Trim(strings.ToLower(table), "`\"")
	if studioTables[table] {
		return table
	}
	return "other"
}
