package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimalEqual compares decimals by value rather than representation,
// so "40000" and "40000.00" are treated as equal.
func AssertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(actual), "expected %s, got %s %v", want, actual, msgAndArgs)
}

// AssertErrorContains checks that err is non-nil and contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}
