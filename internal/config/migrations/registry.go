// Package migrations holds the schema migrations of the settings database.
package migrations

import (
	"database/sql"
	"fmt"
	"slices"
	"strings"
)

// BaseVersion is the schema created by the store itself.
const BaseVersion = 1

// Migration is one schema step. Statements run in a single transaction and
// must tolerate a partially migrated database.
type Migration struct {
	Version     int
	Description string
	Statements  []string
}

var steps []Migration

// register adds a step from an init function. Versions must be unique and
// above BaseVersion.
func register(m Migration) {
	if m.Version <= BaseVersion {
		panic(fmt.Sprintf("migrations: version %d is not above the base schema", m.Version))
	}
	if slices.ContainsFunc(steps, func(o Migration) bool { return o.Version == m.Version }) {
		panic(fmt.Sprintf("migrations: version %d registered twice", m.Version))
	}

	steps = append(steps, m)
	slices.SortFunc(steps, func(a, b Migration) int { return a.Version - b.Version })
}

// All returns every step in version order.
func All() []Migration {
	return slices.Clone(steps)
}

// Latest is the version a fully migrated database reports.
func Latest() int {
	if len(steps) == 0 {
		return BaseVersion
	}

	return steps[len(steps)-1].Version
}

// Pending returns the steps newer than current, in order.
func Pending(current int) []Migration {
	i, _ := slices.BinarySearchFunc(steps, current+1, func(m Migration, v int) int { return m.Version - v })

	return slices.Clone(steps[i:])
}

// Apply runs the statements of m in a transaction.
func (m Migration) Apply(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("v%d: failed to begin: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.Statements {
		if _, err := tx.Exec(stmt); err != nil && !alreadyApplied(err) {
			return fmt.Errorf("v%d: %w", m.Version, err)
		}
	}

	return tx.Commit()
}

// alreadyApplied matches the SQLite errors of a step that ran before.
func alreadyApplied(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}
