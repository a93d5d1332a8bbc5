package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"loanledger/models"
)

// Loans

// ListActiveLoans returns open loans with their line items, newest
// first. Runs inside one transaction so a loan is never visible without
// its items.
func (r *Repo) ListActiveLoans(ctx context.Context) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Preload("Items").
			Where("status = ?", models.LoanStatusActive).
			Order("created_at DESC").
			Find(&loans).Error
	})
	if err != nil {
		return nil, &StorageError{Op: "list active loans", Err: err}
	}
	return loans, nil
}

// CreateLoan opens a loan and reserves stock for every requested line,
// all-or-nothing. The decrement is a conditional update: zero rows
// affected means a concurrent writer took the stock between our check
// and the claim, and the whole transaction rolls back with
// InsufficientStock instead of losing the update.
func (r *Repo) CreateLoan(ctx context.Context, req models.LoanRequest) (*models.Loan, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItemsSelected
	}
	seen := make(map[string]struct{}, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, &ValidationError{
				Msg: fmt.Sprintf("quantity for item %s must be >= 1, got %d", line.ItemID, line.Quantity),
			}
		}
		if _, dup := seen[line.ItemID]; dup {
			return nil, &ValidationError{Msg: fmt.Sprintf("item %s listed more than once", line.ItemID)}
		}
		seen[line.ItemID] = struct{}{}
	}

	loan := &models.Loan{
		ID:           newID("loan", 10),
		BorrowerName: req.BorrowerName,
		LoanDate:     req.LoanDate,
		LoanTime:     req.LoanTime,
		ReturnDate:   req.ReturnDate,
		ReturnTime:   req.ReturnTime,
		Status:       models.LoanStatusActive,
		CreatedAt:    timestamp(nowUTC()),
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Every line is checked before anything is written.
		for _, line := range req.Items {
			var it models.Item
			if err := tx.First(&it, "id = ?", line.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "item", ID: line.ItemID}
				}
				return &StorageError{Op: "load item", Err: err}
			}
			if it.AvailableQuantity < line.Quantity {
				return &InsufficientStockError{
					ItemID:    it.ID,
					ItemName:  it.Name,
					Requested: line.Quantity,
					Available: it.AvailableQuantity,
				}
			}
			loan.Items = append(loan.Items, models.LoanItem{
				LoanID:   loan.ID,
				ItemID:   it.ID,
				ItemName: it.Name,
				Category: it.Category,
				Quantity: line.Quantity,
			})
		}

		if err := tx.Create(loan).Error; err != nil {
			return &StorageError{Op: "insert loan", Err: err}
		}

		for _, line := range loan.Items {
			res := tx.Model(&models.Item{}).
				Where("id = ? AND available_quantity >= ?", line.ItemID, line.Quantity).
				Updates(map[string]any{
					"available_quantity": gorm.Expr("available_quantity - ?", line.Quantity),
					"status": gorm.Expr(
						"CASE WHEN available_quantity - ? > 0 THEN ? ELSE ? END",
						line.Quantity, models.ItemStatusAvailable, models.ItemStatusOnLoan,
					),
				})
			if res.Error != nil {
				return &StorageError{Op: "decrement stock", Err: res.Error}
			}
			if res.RowsAffected == 0 {
				// Lost the race; re-read so the error carries the
				// availability the caller is actually up against.
				var it models.Item
				if err := tx.First(&it, "id = ?", line.ItemID).Error; err != nil {
					return &StorageError{Op: "reload item", Err: err}
				}
				return &InsufficientStockError{
					ItemID:    it.ID,
					ItemName:  it.Name,
					Requested: line.Quantity,
					Available: it.AvailableQuantity,
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// ProcessReturn closes an active loan: restores stock for every line
// whose item still exists, flips the loan to returned, and appends the
// return record, all in one transaction. The flip is conditional on the
// loan still being active so a double return fails with
// ErrLoanAlreadyReturned instead of crediting stock twice.
func (r *Repo) ProcessReturn(ctx context.Context, loanID string) (*models.LoanReturn, error) {
	now := nowUTC()
	var ret *models.LoanReturn

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.Preload("Items").First(&loan, "id = ?", loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "loan", ID: loanID}
			}
			return &StorageError{Op: "load loan", Err: err}
		}
		if loan.Status != models.LoanStatusActive {
			return ErrLoanAlreadyReturned
		}

		res := tx.Model(&models.Loan{}).
			Where("id = ? AND status = ?", loan.ID, models.LoanStatusActive).
			Update("status", models.LoanStatusReturned)
		if res.Error != nil {
			return &StorageError{Op: "close loan", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return ErrLoanAlreadyReturned
		}

		for _, line := range loan.Items {
			var it models.Item
			if err := tx.First(&it, "id = ?", line.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Item deleted since the loan opened; nothing to restore.
					continue
				}
				return &StorageError{Op: "load item", Err: err}
			}
			restored := it.AvailableQuantity + line.Quantity
			if restored > it.Quantity {
				restored = it.Quantity // cap against drift
			}
			if err := tx.Model(&models.Item{}).
				Where("id = ?", it.ID).
				Updates(map[string]any{
					"available_quantity": restored,
					"status":             models.DeriveItemStatus(restored),
				}).Error; err != nil {
				return &StorageError{Op: "restore stock", Err: err}
			}
		}

		snapshot := models.SnapshotLoanItems(loan.Items)
		itemsJSON, err := models.EncodeReturnedItems(snapshot)
		if err != nil {
			return &StorageError{Op: "encode items snapshot", Err: err}
		}
		categories := models.DistinctCategories(snapshot)
		categoriesJSON, err := models.EncodeCategories(categories)
		if err != nil {
			return &StorageError{Op: "encode categories", Err: err}
		}

		lr := &models.LoanReturn{
			ID:             newID("return", 10),
			LoanID:         loan.ID,
			BorrowerName:   loan.BorrowerName,
			LoanDate:       loan.LoanDate,
			LoanTime:       loan.LoanTime,
			ReturnDate:     now.Format("2006-01-02"),
			ReturnTime:     now.Format("15:04"),
			ItemsJSON:      itemsJSON,
			CategoriesJSON: categoriesJSON,
			CreatedAt:      timestamp(now),
			Items:          snapshot,
			Categories:     categories,
		}
		if err := tx.Create(lr).Error; err != nil {
			return &StorageError{Op: "insert return", Err: err}
		}
		ret = lr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
