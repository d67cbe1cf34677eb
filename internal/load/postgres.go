package load

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// DefaultPostgresPort is used when the connection parameters omit a port.
const DefaultPostgresPort = 5432

// ConnParams holds the database connection parameters. Host, Database, User
// and Password are required; Port and SSLMode have defaults.
type ConnParams struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// Validate checks that every required parameter is present.
func (p *ConnParams) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"host", p.Host},
		{"database", p.Database},
		{"user", p.User},
		{"password", p.Password},
	}

	for _, param := range required {
		if param.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingConnParam, param.name)
		}
	}

	return nil
}

// DSN builds the connection string, applying port and sslmode defaults.
func (p *ConnParams) DSN() string {
	port := p.Port
	if port == 0 {
		port = DefaultPostgresPort
	}

	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=" + sslMode,
	}

	return u.String()
}

// PostgresParams holds the per-invocation parameters of the database sink.
type PostgresParams struct {
	Conn     *ConnParams
	Table    string
	Schema   string
	IfExists string
}

// sqlExecutor is the surface of *sqlx.DB the sink uses; tests substitute a
// recording fake.
type sqlExecutor interface {
	Exec(query string, args ...any) (sql.Result, error)
	Close() error
}

// PostgresSink writes the product table to a PostgreSQL table, replacing
// its contents by default.
type PostgresSink struct {
	log  *logger.Logger
	open func(dsn string) (sqlExecutor, error)
}

// NewPostgresSink creates a database sink.
func NewPostgresSink(log *logger.Logger) *PostgresSink {
	return &PostgresSink{
		log: log,
		open: func(dsn string) (sqlExecutor, error) {
			// Connect pings, so reachability is verified before any write.
			return sqlx.Connect("postgres", dsn)
		},
	}
}

// Save writes the table under the given schema and policy. It returns true
// on success.
func (s *PostgresSink) Save(table *models.ProductTable, p PostgresParams) (bool, error) {
	if table.IsEmpty() {
		return false, sinkErr(SinkPostgres, ErrEmptyTable)
	}

	if p.Conn == nil {
		return false, sinkErrf(SinkPostgres, "%w: connection parameters", ErrMissingConnParam)
	}

	if err := p.Conn.Validate(); err != nil {
		return false, sinkErr(SinkPostgres, err)
	}

	schema := p.Schema
	if schema == "" {
		schema = "public"
	}

	policy := p.IfExists
	if policy == "" {
		policy = "replace"
	}

	switch policy {
	case "replace", "append", "fail":
	default:
		return false, sinkErrf(SinkPostgres, "%w: %q", ErrUnknownWritePolicy, policy)
	}

	db, err := s.open(p.Conn.DSN())
	if err != nil {
		return false, sinkErrf(SinkPostgres, "could not connect: %w", err)
	}
	defer db.Close()

	s.log.Info("postgres connection successful", "host", p.Conn.Host, "database", p.Conn.Database)

	if schema != "public" {
		if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(schema)); err != nil {
			return false, sinkErrf(SinkPostgres, "failed to create schema %s: %w", schema, err)
		}
	}

	qualified := pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(p.Table)

	if err := s.prepareTable(db, qualified, policy); err != nil {
		return false, err
	}

	if err := s.insertRows(db, qualified, table); err != nil {
		return false, err
	}

	s.log.Info("data saved to postgres", "table", schema+"."+p.Table, "rows", table.Len())

	return true, nil
}

func (s *PostgresSink) prepareTable(db sqlExecutor, qualified, policy string) error {
	ddl := fmt.Sprintf(`(
	title TEXT,
	price DOUBLE PRECISION,
	rating DOUBLE PRECISION,
	colors INTEGER,
	size TEXT,
	gender TEXT,
	%s TEXT
)`, pq.QuoteIdentifier("timestamp"))

	switch policy {
	case "replace":
		if _, err := db.Exec("DROP TABLE IF EXISTS " + qualified); err != nil {
			return sinkErrf(SinkPostgres, "failed to drop table: %w", err)
		}

		if _, err := db.Exec("CREATE TABLE " + qualified + " " + ddl); err != nil {
			return sinkErrf(SinkPostgres, "failed to create table: %w", err)
		}
	case "append":
		if _, err := db.Exec("CREATE TABLE IF NOT EXISTS " + qualified + " " + ddl); err != nil {
			return sinkErrf(SinkPostgres, "failed to create table: %w", err)
		}
	case "fail":
		// Errors when the table already exists, which is the policy.
		if _, err := db.Exec("CREATE TABLE " + qualified + " " + ddl); err != nil {
			return sinkErrf(SinkPostgres, "failed to create table: %w", err)
		}
	}

	return nil
}

// insertRows writes all rows in a single multi-row INSERT.
func (s *PostgresSink) insertRows(db sqlExecutor, qualified string, table *models.ProductTable) error {
	const fieldCount = 7

	var (
		placeholders []string
		args         []any
	)

	for i, product := range table.Rows {
		base := i * fieldCount
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args,
			product.Title,
			product.Price,
			product.Rating,
			product.Colors,
			product.Size,
			product.Gender,
			product.Timestamp,
		)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (title, price, rating, colors, size, gender, %s) VALUES %s",
		qualified,
		pq.QuoteIdentifier("timestamp"),
		strings.Join(placeholders, ", "),
	)

	if _, err := db.Exec(query, args...); err != nil {
		return sinkErrf(SinkPostgres, "failed to insert rows: %w", err)
	}

	return nil
}
