package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/jmoiron/sqlx"
)

type txStore struct {
	tx *sqlx.Tx
}

func newTx(tx *sqlx.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // nothing to close; caller will commit/rollback and outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created, so we just return nil.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{db: t.tx} }
func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) Sessions() store.Sessions           { return &sessionsRepo{db: t.tx} }
func (t *txStore) Invites() store.Invites             { return &invitesRepo{db: t.tx} }
func (t *txStore) UserTokens() store.UserTokens       { return &userTokensRepo{db: t.tx} }
func (t *txStore) BackupCodes() store.BackupCodes     { return &backupCodesRepo{db: t.tx} }
func (t *txStore) Audit() store.Audit                 { return &auditRepo{db: t.tx} }
func (t *txStore) People() store.People               { return &peopleRepo{db: t.tx} }
func (t *txStore) Tags() store.Tags                   { return &tagsRepo{db: t.tx} }
func (t *txStore) CustomFields() store.CustomFields   { return &customFieldsRepo{db: t.tx} }
func (t *txStore) Groups() store.Groups               { return &groupsRepo{db: t.tx} }
func (t *txStore) ServicePlans() store.ServicePlans   { return &servicePlansRepo{db: t.tx} }
func (t *txStore) Songs() store.Songs                 { return &songsRepo{db: t.tx} }
func (t *txStore) Templates() store.Templates         { return &templatesRepo{db: t.tx} }
func (t *txStore) Forms() store.Forms                 { return &formsRepo{db: t.tx} }
func (t *txStore) Workflows() store.Workflows         { return &workflowsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // no-op; migrations should be applied before starting a tx
