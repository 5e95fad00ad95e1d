package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStatusTransitions(t *testing.T) {
	assert.True(t, PeriodStatusOpen.CanTransitionTo(PeriodStatusClosed))
	assert.False(t, PeriodStatusOpen.CanTransitionTo(PeriodStatusLocked))
	assert.True(t, PeriodStatusClosed.CanTransitionTo(PeriodStatusLocked))
	assert.False(t, PeriodStatusClosed.CanTransitionTo(PeriodStatusOpen))
	assert.False(t, PeriodStatusLocked.CanTransitionTo(PeriodStatusOpen))
	assert.False(t, PeriodStatusLocked.CanTransitionTo(PeriodStatusClosed))
}

func TestAcceptsPostings(t *testing.T) {
	assert.True(t, PeriodStatusOpen.AcceptsPostings(false))
	assert.True(t, PeriodStatusClosed.AcceptsPostings(true))
	assert.False(t, PeriodStatusClosed.AcceptsPostings(false))
	assert.False(t, PeriodStatusLocked.AcceptsPostings(true))
}

func TestParsePeriodStatus(t *testing.T) {
	st, err := ParsePeriodStatus("Closed")
	assert.NoError(t, err)
	assert.Equal(t, PeriodStatusClosed, st)

	_, err = ParsePeriodStatus("archived")
	assert.Error(t, err)
}
