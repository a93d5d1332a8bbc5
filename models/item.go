// models/item.go
package models

const ItemTable = "items"

// Display status, derived from availability.
const (
	ItemStatusAvailable = "Available"
	ItemStatusOnLoan    = "OnLoan"
)

type Item struct {
	ID                string `gorm:"primaryKey;size:64" json:"id"`
	Name              string `gorm:"size:200;not null" json:"name"`
	Category          string `gorm:"size:120;not null" json:"category"`
	Description       string `json:"description,omitempty"`
	Quantity          int    `gorm:"not null" json:"quantity"`                            // total owned
	AvailableQuantity int    `gorm:"column:available_quantity;not null" json:"availableQuantity"` // not reserved by active loans
	Status            string `gorm:"size:20;not null" json:"status"`
	CreatedAt         string `gorm:"size:40;not null;index" json:"createdAt"`
}

func (Item) TableName() string { return ItemTable }

// DeriveItemStatus maps availability onto the display status.
func DeriveItemStatus(available int) string {
	if available > 0 {
		return ItemStatusAvailable
	}
	return ItemStatusOnLoan
}

// ItemInput carries the fields for creating a catalog item. Status is
// optional; when empty it is derived from the quantity.
type ItemInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status,omitempty"`
}

// ItemPatch updates only the fields that are set; nil means keep the
// stored value. Availability is never patched directly, the repository
// recomputes it from the quantity currently out on active loans.
type ItemPatch struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Apply merges the patch onto a copy of it.
func (p ItemPatch) Apply(it Item) Item {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	return it
}
