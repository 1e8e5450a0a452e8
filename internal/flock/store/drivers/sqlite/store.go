package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/jmoiron/sqlx"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know the bind style of
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

type Store struct {
	db  *sqlx.DB
	dsn string
}

// NewStore opens the database at path. ":memory:" gives a private in-memory
// database, which is what the tests use.
//
// Write transactions start with BEGIN IMMEDIATE so a count-then-insert (plan
// limits) cannot interleave with another writer. Times are stored in the
// sqlite text format so expiry comparisons order correctly.
func NewStore(path string) (*Store, error) {
	dsn := buildDSN(path)

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &Store{db: db, dsn: dsn}, nil
}

// newStoreFromDB wraps an existing handle; used with sqlmock.
func newStoreFromDB(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "sqlite")}
}

func buildDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite&_txlock=immediate"
	}
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite&_txlock=immediate",
		path,
	)
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

func (s *Store) Organizations() store.Organizations { return &organizationsRepo{db: s.db} }
func (s *Store) Users() store.Users                 { return &usersRepo{db: s.db} }
func (s *Store) Sessions() store.Sessions           { return &sessionsRepo{db: s.db} }
func (s *Store) Invites() store.Invites             { return &invitesRepo{db: s.db} }
func (s *Store) UserTokens() store.UserTokens       { return &userTokensRepo{db: s.db} }
func (s *Store) BackupCodes() store.BackupCodes     { return &backupCodesRepo{db: s.db} }
func (s *Store) Audit() store.Audit                 { return &auditRepo{db: s.db} }
func (s *Store) People() store.People               { return &peopleRepo{db: s.db} }
func (s *Store) Tags() store.Tags                   { return &tagsRepo{db: s.db} }
func (s *Store) CustomFields() store.CustomFields   { return &customFieldsRepo{db: s.db} }
func (s *Store) Groups() store.Groups               { return &groupsRepo{db: s.db} }
func (s *Store) ServicePlans() store.ServicePlans   { return &servicePlansRepo{db: s.db} }
func (s *Store) Songs() store.Songs                 { return &songsRepo{db: s.db} }
func (s *Store) Templates() store.Templates         { return &templatesRepo{db: s.db} }
func (s *Store) Forms() store.Forms                 { return &formsRepo{db: s.db} }
func (s *Store) Workflows() store.Workflows         { return &workflowsRepo{db: s.db} }

// orgOf unwraps a scope, refusing the zero value.
func orgOf(s domain.Scope) (string, error) {
	if s.IsZero() {
		return "", store.ErrNoScope
	}
	return s.OrgID(), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *sqlitedrv.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

// expectRow maps "nothing matched" to store.ErrNotFound for updates and
// deletes, which is also what a cross-tenant id looks like.
func expectRow(res sql.Result, err error) error {
	if err != nil {
		return mapConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func affected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// likePattern escapes a user supplied substring for LIKE ... ESCAPE '\'.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
