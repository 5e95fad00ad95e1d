package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestNewAccountingPeriod(t *testing.T) {
	p, err := NewAccountingPeriod(uuid.New(), "2024-03", date(2024, 3, 1), date(2024, 3, 31), 2024)
	require.NoError(t, err)
	assert.Equal(t, valueobject.PeriodStatusOpen, p.Status)
	assert.Equal(t, 2024, p.FiscalYear)
}

func TestNewAccountingPeriodRejectsInvertedDates(t *testing.T) {
	_, err := NewAccountingPeriod(uuid.New(), "bad", date(2024, 4, 1), date(2024, 3, 1), 2024)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidDateRange, apperr.CodeOf(err))
}

func TestPeriodContains(t *testing.T) {
	p, err := NewAccountingPeriod(uuid.New(), "2024-03", date(2024, 3, 1), date(2024, 3, 31), 2024)
	require.NoError(t, err)

	assert.True(t, p.Contains(date(2024, 3, 1)))
	assert.True(t, p.Contains(date(2024, 3, 31)))
	assert.True(t, p.Contains(date(2024, 3, 15)))
	assert.False(t, p.Contains(date(2024, 2, 29)))
	assert.False(t, p.Contains(date(2024, 4, 1)))
}

func TestPeriodRange(t *testing.T) {
	p, err := NewAccountingPeriod(uuid.New(), "2024-03", date(2024, 3, 1), date(2024, 3, 31), 2024)
	require.NoError(t, err)

	r := p.Range()
	require.NotNil(t, r.From)
	require.NotNil(t, r.To)
	assert.True(t, r.Contains(date(2024, 3, 10)))
	assert.False(t, r.Contains(date(2024, 4, 10)))
}
