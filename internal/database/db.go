// Package database opens the MySQL pool used by the catalog service and
// owns its schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection with a ping.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql %s: %w", cfg.Addr, err)
	}
	return db, nil
}

// schema is applied on startup.  It is idempotent, so running it against an
// existing database is a no-op.
const schema = `CREATE TABLE IF NOT EXISTS movies (
	id           VARCHAR(64)  NOT NULL PRIMARY KEY,
	title        VARCHAR(255) NOT NULL,
	description  TEXT         NOT NULL,
	poster       VARCHAR(1024) NOT NULL DEFAULT '',
	capacity     INT          NOT NULL DEFAULT 0,
	tickets_sold INT          NOT NULL DEFAULT 0,
	runtime      INT          NOT NULL DEFAULT 0,
	showtime     VARCHAR(32)  NOT NULL DEFAULT ''
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// Migrate creates the movies table when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate movies: %w", err)
	}
	return nil
}
