package accounting

import (
	"fmt"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a transaction amount based
// on account type and direction. Every metric goes through this single table
// so bucket semantics can never diverge between callers.
//
// Conventions:
//   - CASH/BANK/OTHER_ASSET: Credit is money received into the account (+),
//     Debit is money paid out (-).
//   - INCOME: Credit increases recognized income (+).
//   - EXPENSE: Credit increases recognized expense (+); an expense is posted
//     as a credit to the expense account when it is recorded.
//   - LIABILITY/EQUITY: Credit increases the balance (+).
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := txn.Amount
	isCredit := txn.Direction == domain.Credit

	switch accountType {
	case domain.Cash, domain.Bank, domain.OtherAsset:
		if !isCredit { // Debit to an asset account: money paid out
			signedAmount = signedAmount.Neg()
		}
	case domain.Income:
		if !isCredit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Expense:
		if !isCredit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity:
		if !isCredit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// ValidateTrialBalance checks that total debits equal total credits across a
// set of trial balance rows. A non-zero difference means the ledger itself is
// inconsistent.
func ValidateTrialBalance(rows []domain.TrialBalanceRow) error {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("trial balance does not net to zero: debits %s, credits %s", totalDebit.String(), totalCredit.String())
	}
	return nil
}
