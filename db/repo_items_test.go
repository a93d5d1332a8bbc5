package db_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanledger/db"
	"loanledger/models"
)

func TestCreateItem_InitializesAvailability(t *testing.T) {
	repo := newTestRepo(t)

	it := mustCreateItem(t, repo, "Projector", "AV Equipment", 2)

	assert.True(t, strings.HasPrefix(it.ID, "item_"), "id %q should carry the item_ prefix", it.ID)
	assert.Equal(t, 2, it.Quantity)
	assert.Equal(t, 2, it.AvailableQuantity)
	assert.Equal(t, models.ItemStatusAvailable, it.Status)
	assert.NotEmpty(t, it.CreatedAt)
}

func TestCreateItem_ZeroQuantityStartsOnLoan(t *testing.T) {
	repo := newTestRepo(t)

	it := mustCreateItem(t, repo, "Broken Cable", "Cables", 0)

	assert.Equal(t, 0, it.AvailableQuantity)
	assert.Equal(t, models.ItemStatusOnLoan, it.Status)
}

func TestCreateItem_NegativeQuantityRejected(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.CreateItem(context.Background(), models.ItemInput{
		Name: "Ghost", Category: "None", Quantity: -1,
	})

	var verr *db.ValidationError
	require.ErrorAs(t, err, &verr)

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListAvailableItems_FiltersAndOrdersByName(t *testing.T) {
	repo := newTestRepo(t)

	mustCreateItem(t, repo, "Zoom Recorder", "AV Equipment", 1)
	mustCreateItem(t, repo, "Adapter", "Cables", 3)
	mustCreateItem(t, repo, "Mixer", "AV Equipment", 0) // nothing to lend

	items, err := repo.ListAvailableItems(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Adapter", items[0].Name)
	assert.Equal(t, "Zoom Recorder", items[1].Name)
}

func TestListAvailableItems_EmptyStoreReturnsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	items, err := repo.ListAvailableItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateItem_PatchKeepsUnsetFields(t *testing.T) {
	repo := newTestRepo(t)
	it := mustCreateItem(t, repo, "Tripod", "AV Equipment", 4)

	name := "Tripod (carbon)"
	updated, err := repo.UpdateItem(context.Background(), it.ID, models.ItemPatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Tripod (carbon)", updated.Name)
	assert.Equal(t, "AV Equipment", updated.Category)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, 4, updated.AvailableQuantity)
}

func TestUpdateItem_RecomputesAvailabilityWhileOnLoan(t *testing.T) {
	repo := newTestRepo(t)
	it := mustCreateItem(t, repo, "Camera", "AV Equipment", 5)
	mustCreateLoan(t, repo, "Dana", models.LoanRequestItem{ItemID: it.ID, Quantity: 2})

	// 2 out on loan; shrinking the total to 4 leaves 2 lendable.
	qty := 4
	updated, err := repo.UpdateItem(context.Background(), it.ID, models.ItemPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.AvailableQuantity)
	assert.Equal(t, models.ItemStatusAvailable, updated.Status)

	// Shrinking below the borrowed count floors availability at zero.
	qty = 1
	updated, err = repo.UpdateItem(context.Background(), it.ID, models.ItemPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.AvailableQuantity)
	assert.Equal(t, models.ItemStatusOnLoan, updated.Status)
}

func TestUpdateItem_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	name := "whatever"
	_, err := repo.UpdateItem(context.Background(), "item_missing", models.ItemPatch{Name: &name})

	var nf *db.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "item", nf.Entity)
}

func TestDeleteItem_BlockedByActiveLoan(t *testing.T) {
	repo := newTestRepo(t)
	it := mustCreateItem(t, repo, "Drill", "Tools", 3)
	mustCreateLoan(t, repo, "Sam", models.LoanRequestItem{ItemID: it.ID, Quantity: 1})

	err := repo.DeleteItem(context.Background(), it.ID)
	require.ErrorIs(t, err, db.ErrItemHasActiveLoans)

	// The item is still there.
	_, err = repo.FindItemByID(context.Background(), it.ID)
	require.NoError(t, err)
}

func TestDeleteItem_AllowedAfterReturn(t *testing.T) {
	repo := newTestRepo(t)
	it := mustCreateItem(t, repo, "Drill", "Tools", 3)
	loan := mustCreateLoan(t, repo, "Sam", models.LoanRequestItem{ItemID: it.ID, Quantity: 1})

	_, err := repo.ProcessReturn(context.Background(), loan.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteItem(context.Background(), it.ID))

	var nf *db.NotFoundError
	_, err = repo.FindItemByID(context.Background(), it.ID)
	require.ErrorAs(t, err, &nf)
}

func TestDeleteItem_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.DeleteItem(context.Background(), "item_missing")

	var nf *db.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestAvailabilityNeverExceedsQuantity(t *testing.T) {
	repo := newTestRepo(t)
	it := mustCreateItem(t, repo, "Ladder", "Tools", 5)
	loan := mustCreateLoan(t, repo, "Kim", models.LoanRequestItem{ItemID: it.ID, Quantity: 2})

	// Admin shrinks the total while 2 are out.
	qty := 1
	_, err := repo.UpdateItem(context.Background(), it.ID, models.ItemPatch{Quantity: &qty})
	require.NoError(t, err)

	// Returning 2 against a total of 1 must cap, not overflow.
	_, err = repo.ProcessReturn(context.Background(), loan.ID)
	require.NoError(t, err)

	got := itemByID(t, repo, it.ID)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, 1, got.AvailableQuantity)
	assert.GreaterOrEqual(t, got.AvailableQuantity, 0)
	assert.LessOrEqual(t, got.AvailableQuantity, got.Quantity)
}
