package domain

// AccountType classifies an account for aggregation. It is a closed set:
// every account carries exactly one type, assigned at creation and never
// changed afterwards, since reclassifying an account would silently corrupt
// historical flow metrics.
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

// AccountTypes lists every valid account type.
var AccountTypes = []AccountType{Cash, Bank, OtherAsset, Income, Expense, Liability, Equity}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Cash, Bank, OtherAsset, Income, Expense, Liability, Equity:
		return true
	}
	return false
}

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	Name        string      `json:"name"`        // User-defined name
	AccountType AccountType `json:"accountType"` // CASH, BANK, INCOME, etc.
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Soft delete or status flag
	AuditFields             // Embed CreatedAt, CreatedBy, etc.
}
