// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-polls/cliparse"
)

// Open connects to the configured database and verifies the connection.
// SQLite connections get foreign keys enabled and a single-connection pool.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, dsn := driverAndDSN(cfg)

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	if driver == cliparse.DatabaseSQLite {
		// SQLite allows one writer; serialize through one connection
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DatabaseType, err)
	}

	return conn, nil
}

func driverAndDSN(cfg cliparse.Config) (string, string) {
	if cfg.DatabaseType == cliparse.DatabasePostgres {
		return cliparse.DatabasePostgres, cfg.DatabaseURL
	}
	return cliparse.DatabaseSQLite, SQLiteDSN(cfg.DatabaseURL)
}

// SQLiteDSN appends the foreign_keys pragma unless the DSN already sets it
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
