package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/shanco/accessissues/internal/accessissues/store/drivers/sqldb"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Dialect is the PostgreSQL flavour of the shared queries.
var Dialect = sqldb.Dialect{
	Name:                "postgres",
	Numbered:            true,
	UniqueViolation:     hasCode(codeUniqueViolation),
	ForeignKeyViolation: hasCode(codeForeignKeyViolation),
}

type Store struct {
	*sqldb.DB
}

// NewStore opens url with the pgx stdlib driver and checks the connection.
func NewStore(ctx context.Context, url string) (*Store, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewFromDB(db), nil
}

// NewFromDB wraps an already opened handle.
func NewFromDB(db *sql.DB) *Store {
	return &Store{DB: sqldb.NewDB(db, Dialect)}
}

func hasCode(code string) func(error) bool {
	return func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == code
	}
}
