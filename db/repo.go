package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repo exposes the catalog store, the loan and return ledgers, and the
// transactional createLoan/processReturn coordinators over one injected
// store handle. Every mutating method opens and closes its own
// transaction scope.
type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// created_at layout. Fixed width so string ordering is chronological.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

func nowUTC() time.Time { return time.Now().UTC() }

func timestamp(t time.Time) string { return t.UTC().Format(timestampLayout) }

// newID returns a prefixed opaque id, e.g. "item_1f0c93aa".
func newID(prefix string, n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:n]
}
