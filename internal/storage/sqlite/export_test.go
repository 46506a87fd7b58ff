package sqlite

import "database/sql"

// GetDB exposes the connection so tests can inspect and tamper with rows.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
