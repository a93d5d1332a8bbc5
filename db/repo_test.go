package db_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"loanledger/db"
	"loanledger/models"
)

func newTestRepo(t *testing.T) *db.Repo {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection so every session sees the same in-memory database.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))
	return db.NewRepo(conn)
}

func mustCreateItem(t *testing.T, r *db.Repo, name, category string, quantity int) *models.Item {
	t.Helper()
	it, err := r.CreateItem(context.Background(), models.ItemInput{
		Name:     name,
		Category: category,
		Quantity: quantity,
	})
	require.NoError(t, err)
	return it
}

func mustCreateLoan(t *testing.T, r *db.Repo, borrower string, lines ...models.LoanRequestItem) *models.Loan {
	t.Helper()
	loan, err := r.CreateLoan(context.Background(), models.LoanRequest{
		BorrowerName: borrower,
		LoanDate:     "2026-08-28",
		LoanTime:     "09:30",
		ReturnDate:   "2026-09-04",
		Items:        lines,
	})
	require.NoError(t, err)
	return loan
}

func itemByID(t *testing.T, r *db.Repo, id string) *models.Item {
	t.Helper()
	it, err := r.FindItemByID(context.Background(), id)
	require.NoError(t, err)
	return it
}
