package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyworks/tally/internal/application/usecase"
	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

const chartTemplate = `
name: UK Small Business
accounts:
  - code: "1000"
    name: Assets
    type: asset
  - code: "1010"
    name: Cash
    type: asset
    parent: "1000"
  - code: "3900"
    name: Retained Earnings
    type: equity
  - code: "4000"
    name: Sales
    type: revenue
    tax_category: standard
`

func TestImportChart_SeedsEmptyTenant(t *testing.T) {
	accounts := &mockAccountRepository{}
	publisher := &mockEventPublisher{}
	uc := usecase.NewImportChart(accounts, publisher, discardLogger())

	imported, err := uc.Execute(context.Background(), uuid.New(), []byte(chartTemplate))
	require.NoError(t, err)

	require.Len(t, imported, 4)
	require.Len(t, accounts.batches, 1)

	cash := imported[1]
	assert.Equal(t, "1010", cash.Code)
	assert.Equal(t, valueobject.AccountTypeAsset, cash.Type)
	require.NotNil(t, cash.ParentID)
	assert.Equal(t, imported[0].ID, *cash.ParentID)

	sales := imported[3]
	assert.Equal(t, "standard", sales.TaxCategory)
	assert.True(t, sales.IsActive)

	require.Len(t, publisher.publishedEvents, 1)
	assert.Equal(t, "ledger.chart.imported", publisher.publishedEvents[0].EventType())
}

func TestImportChart_NonEmptyChartRejected(t *testing.T) {
	existing := model.Account{ID: uuid.New(), Code: "1000", Name: "Assets",
		Type: valueobject.AccountTypeAsset, IsActive: true}
	accounts := &mockAccountRepository{accounts: []model.Account{existing}}
	uc := usecase.NewImportChart(accounts, &mockEventPublisher{}, discardLogger())

	_, err := uc.Execute(context.Background(), uuid.New(), []byte(chartTemplate))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeChartNotEmpty, apperr.CodeOf(err))
	assert.Empty(t, accounts.batches)
}

func TestImportChart_ForwardParentReferenceRejected(t *testing.T) {
	template := `
accounts:
  - code: "1010"
    name: Cash
    type: asset
    parent: "1000"
  - code: "1000"
    name: Assets
    type: asset
`
	uc := usecase.NewImportChart(&mockAccountRepository{}, &mockEventPublisher{}, discardLogger())
	_, err := uc.Execute(context.Background(), uuid.New(), []byte(template))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestImportChart_InvalidYAMLRejected(t *testing.T) {
	uc := usecase.NewImportChart(&mockAccountRepository{}, &mockEventPublisher{}, discardLogger())
	_, err := uc.Execute(context.Background(), uuid.New(), []byte("accounts: ["))
	require.Error(t, err)
}
