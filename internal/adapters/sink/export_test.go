package sink

import "database/sql"

// DBForTest exposes the handle for assertions.
func DBForTest(s *SQLite) *sql.DB { return s.db }
