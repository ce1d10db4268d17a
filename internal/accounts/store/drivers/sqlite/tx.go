package sqlite

import (
	"database/sql"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite/gen"
)

// Tx scopes the repositories to one transaction. Store.WithTx owns commit and
// rollback.
type Tx struct {
	tx     *sql.Tx
	q      *gen.Queries
	picker domain.AvatarPicker
}

func newTx(tx *sql.Tx, picker domain.AvatarPicker) *Tx {
	return &Tx{
		tx:     tx,
		q:      gen.New(tx),
		picker: picker,
	}
}

func (t *Tx) Users() store.Users       { return &usersRepo{q: t.q, picker: t.picker} }
func (t *Tx) Feedback() store.Feedback { return &feedbackRepo{q: t.q} }
