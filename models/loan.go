// models/loan.go
package models

const (
	LoanTable     = "loans"
	LoanItemTable = "loan_items"
)

const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
)

type Loan struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	BorrowerName string `gorm:"size:200;not null" json:"borrowerName"`
	LoanDate     string `gorm:"size:10;not null" json:"loanDate"` // YYYY-MM-DD
	LoanTime     string `gorm:"size:5" json:"loanTime,omitempty"` // HH:MM, may be empty
	ReturnDate   string `gorm:"size:10;not null" json:"returnDate"` // expected return
	ReturnTime   string `gorm:"size:5" json:"returnTime,omitempty"`
	Status       string `gorm:"size:20;not null;index" json:"status"`
	CreatedAt    string `gorm:"size:40;not null;index" json:"createdAt"`

	Items []LoanItem `gorm:"foreignKey:LoanID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

// LoanItem is an immutable line-item snapshot: name and category are
// copied from the item at loan time and never follow later edits.
type LoanItem struct {
	LoanID   string `gorm:"primaryKey;size:64" json:"loanId"`
	ItemID   string `gorm:"primaryKey;size:64" json:"itemId"`
	ItemName string `gorm:"size:200;not null" json:"itemName"`
	Category string `gorm:"size:120;not null" json:"category"`
	Quantity int    `gorm:"not null" json:"quantity"`
}

func (Loan) TableName() string     { return LoanTable }
func (LoanItem) TableName() string { return LoanItemTable }

// LoanRequest is the caller-built input for opening a loan.
type LoanRequest struct {
	BorrowerName string            `json:"borrowerName"`
	LoanDate     string            `json:"loanDate"`
	LoanTime     string            `json:"loanTime,omitempty"`
	ReturnDate   string            `json:"returnDate"`
	ReturnTime   string            `json:"returnTime,omitempty"`
	Items        []LoanRequestItem `json:"items"`
}

type LoanRequestItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}
