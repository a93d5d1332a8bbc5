package db

import (
	"context"

	"loanledger/models"
)

// Returns

// ListReturns yields the return history newest first, with the line
// item and category snapshots decoded.
func (r *Repo) ListReturns(ctx context.Context) ([]models.LoanReturn, error) {
	var rows []models.LoanReturn
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, &StorageError{Op: "list returns", Err: err}
	}
	for i := range rows {
		if err := rows[i].DecodeSnapshots(); err != nil {
			return nil, &StorageError{Op: "decode return snapshot", Err: err}
		}
	}
	return rows, nil
}

// DeleteReturn trims one record from the audit history. Catalog and
// loan state are untouched; deleting history does not un-return a loan.
func (r *Repo) DeleteReturn(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.LoanReturn{}, "id = ?", id)
	if res.Error != nil {
		return &StorageError{Op: "delete return", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "return", ID: id}
	}
	return nil
}
