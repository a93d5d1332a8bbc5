// models/loan_return.go
package models

const ReturnTable = "returns"

// LoanReturn mirrors a closed loan: borrower and dates are copied from
// the loan, the line items and their distinct categories are kept as
// serialized snapshots. Created exactly once, when the loan closes.
type LoanReturn struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	LoanID       string `gorm:"size:64;not null;index" json:"loanId"`
	BorrowerName string `gorm:"size:200;not null" json:"borrowerName"`
	LoanDate     string `gorm:"size:10;not null" json:"loanDate"`
	LoanTime     string `gorm:"size:5" json:"loanTime,omitempty"`
	ReturnDate   string `gorm:"size:10;not null" json:"returnDate"` // wall clock at processing time
	ReturnTime   string `gorm:"size:5" json:"returnTime,omitempty"`

	ItemsJSON      string `gorm:"column:items_json;not null" json:"-"`
	CategoriesJSON string `gorm:"column:categories_json" json:"-"`

	CreatedAt string `gorm:"size:40;not null;index" json:"createdAt"`

	// Decoded views of the JSON columns, filled by DecodeSnapshots.
	Items      []ReturnedItem `gorm:"-" json:"items"`
	Categories []string       `gorm:"-" json:"categories"`
}

func (LoanReturn) TableName() string { return ReturnTable }

// DecodeSnapshots fills Items and Categories from the JSON columns.
func (lr *LoanReturn) DecodeSnapshots() error {
	items, err := DecodeReturnedItems(lr.ItemsJSON)
	if err != nil {
		return err
	}
	categories, err := DecodeCategories(lr.CategoriesJSON)
	if err != nil {
		return err
	}
	lr.Items = items
	lr.Categories = categories
	return nil
}
