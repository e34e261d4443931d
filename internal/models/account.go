package models

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

const (
	Cash       AccountType = "CASH"
	Bank       AccountType = "BANK"
	OtherAsset AccountType = "OTHER_ASSET"
	Income     AccountType = "INCOME"
	Expense    AccountType = "EXPENSE"
	Liability  AccountType = "LIABILITY"
	Equity     AccountType = "EQUITY"
)

// Account represents a row in the accounts table.
type Account struct {
	AccountID   string      `db:"account_id"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields             // Embed common audit fields
}
