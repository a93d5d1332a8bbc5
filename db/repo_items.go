package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"loanledger/models"
)

// Items

func (r *Repo) CreateItem(ctx context.Context, in models.ItemInput) (*models.Item, error) {
	if in.Quantity < 0 {
		return nil, &ValidationError{Msg: fmt.Sprintf("quantity must be >= 0, got %d", in.Quantity)}
	}
	status := in.Status
	if status == "" {
		status = models.DeriveItemStatus(in.Quantity)
	}
	it := &models.Item{
		ID:                newID("item", 8),
		Name:              in.Name,
		Category:          in.Category,
		Description:       in.Description,
		Quantity:          in.Quantity,
		AvailableQuantity: in.Quantity,
		Status:            status,
		CreatedAt:         timestamp(nowUTC()),
	}
	if err := r.DB.WithContext(ctx).Create(it).Error; err != nil {
		return nil, &StorageError{Op: "insert item", Err: err}
	}
	return it, nil
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "item", ID: id}
		}
		return nil, &StorageError{Op: "load item", Err: err}
	}
	return &it, nil
}

func (r *Repo) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, &StorageError{Op: "list items", Err: err}
	}
	return items, nil
}

// ListAvailableItems returns items with stock left to lend, by name.
func (r *Repo) ListAvailableItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).
		Where("available_quantity > 0").
		Order("name").
		Find(&items).Error; err != nil {
		return nil, &StorageError{Op: "list available items", Err: err}
	}
	return items, nil
}

// UpdateItem merges the patch and recomputes availability so that stock
// currently out on active loans stays reserved even when the total
// quantity is edited: available = max(0, quantity - borrowed).
func (r *Repo) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (*models.Item, error) {
	var updated *models.Item
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.Item
		if err := tx.First(&old, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "item", ID: id}
			}
			return &StorageError{Op: "load item", Err: err}
		}

		next := patch.Apply(old)
		if next.Quantity < 0 {
			return &ValidationError{Msg: fmt.Sprintf("quantity must be >= 0, got %d", next.Quantity)}
		}

		borrowed := old.Quantity - old.AvailableQuantity
		next.AvailableQuantity = next.Quantity - borrowed
		if next.AvailableQuantity < 0 {
			next.AvailableQuantity = 0
		}
		if patch.Status == nil {
			next.Status = models.DeriveItemStatus(next.AvailableQuantity)
		}

		if err := tx.Save(&next).Error; err != nil {
			return &StorageError{Op: "update item", Err: err}
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteItem refuses to remove an item that an active loan still
// references. This guard is the one cross-entity check living outside
// the coordinators; it mutates nothing but the item row itself.
func (r *Repo) DeleteItem(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.LoanItem{}).
			Joins(fmt.Sprintf("JOIN %s l ON l.id = %s.loan_id", models.LoanTable, models.LoanItemTable)).
			Where(fmt.Sprintf("%s.item_id = ? AND l.status = ?", models.LoanItemTable), id, models.LoanStatusActive).
			Count(&n).Error; err != nil {
			return &StorageError{Op: "count active references", Err: err}
		}
		if n > 0 {
			return ErrItemHasActiveLoans
		}

		res := tx.Delete(&models.Item{}, "id = ?", id)
		if res.Error != nil {
			return &StorageError{Op: "delete item", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Entity: "item", ID: id}
		}
		return nil
	})
}
