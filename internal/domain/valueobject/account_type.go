package valueobject

import (
	"fmt"
	"strings"
)

// AccountType classifies an account and determines its normal balance sign.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// ParseAccountType validates and normalizes a type string.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(s))
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return t, nil
	}
	return "", fmt.Errorf("invalid account type %q", s)
}

// NormalBalanceSign returns +1 for debit-normal types (asset, expense) and
// -1 for credit-normal types (liability, equity, revenue). Every signed
// balance in the system is derived through this sign.
func (t AccountType) NormalBalanceSign() int {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return 1
	default:
		return -1
	}
}

// IsTemporary reports whether balances of this type are zeroed at period close
// and carried into retained earnings.
func (t AccountType) IsTemporary() bool {
	return t == AccountTypeRevenue || t == AccountTypeExpense
}

func (t AccountType) String() string { return string(t) }
