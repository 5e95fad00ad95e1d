package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/event"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
	"github.com/tallyworks/tally/pkg/events"
)

// ChartTemplate is the YAML shape of a chart-of-accounts template.
type ChartTemplate struct {
	Name     string                 `yaml:"name"`
	Accounts []ChartTemplateAccount `yaml:"accounts"`
}

// ChartTemplateAccount is one template row. Parent refers to another row by
// code and must appear earlier in the file.
type ChartTemplateAccount struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Parent      string `yaml:"parent,omitempty"`
	SortOrder   int    `yaml:"sort_order,omitempty"`
	TaxCategory string `yaml:"tax_category,omitempty"`
}

// ImportChart seeds an empty tenant's chart of accounts from a YAML template.
// Importing into a tenant that already has accounts is rejected so a template
// can never silently merge with a live chart.
type ImportChart struct {
	accounts  port.AccountRepository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewImportChart(accounts port.AccountRepository, publisher events.EventPublisher, logger *slog.Logger) *ImportChart {
	return &ImportChart{accounts: accounts, publisher: publisher, logger: logger}
}

func (uc *ImportChart) Execute(ctx context.Context, tenantID uuid.UUID, templateYAML []byte) ([]model.Account, error) {
	var tpl ChartTemplate
	if err := yaml.Unmarshal(templateYAML, &tpl); err != nil {
		return nil, fmt.Errorf("parse chart template: %w", err)
	}
	if len(tpl.Accounts) == 0 {
		return nil, apperr.Validation(apperr.CodeUnknownAccount, "chart template has no accounts")
	}

	count, err := uc.accounts.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil, apperr.State(apperr.CodeChartNotEmpty,
			"tenant already has %d accounts, import requires an empty chart", count)
	}

	byCode := make(map[string]uuid.UUID, len(tpl.Accounts))
	accounts := make([]model.Account, 0, len(tpl.Accounts))
	for i, row := range tpl.Accounts {
		accountType, err := valueobject.ParseAccountType(row.Type)
		if err != nil {
			return nil, apperr.Validation(apperr.CodeUnknownAccount,
				"template row %d (%s): %s", i+1, row.Code, err)
		}
		if _, dup := byCode[row.Code]; dup {
			return nil, apperr.Validation(apperr.CodeUnknownAccount,
				"template row %d: duplicate code %s", i+1, row.Code)
		}

		var parentID *uuid.UUID
		if row.Parent != "" {
			pid, ok := byCode[row.Parent]
			if !ok {
				return nil, apperr.Validation(apperr.CodeUnknownAccount,
					"template row %d (%s): parent %s not defined earlier", i+1, row.Code, row.Parent)
			}
			parentID = &pid
		}

		sortOrder := row.SortOrder
		if sortOrder == 0 {
			sortOrder = i + 1
		}
		account := model.Account{
			ID:          uuid.New(),
			TenantID:    tenantID,
			Code:        row.Code,
			Name:        row.Name,
			Type:        accountType,
			ParentID:    parentID,
			SortOrder:   sortOrder,
			TaxCategory: row.TaxCategory,
			IsActive:    true,
		}
		byCode[row.Code] = account.ID
		accounts = append(accounts, account)
	}

	if err := uc.accounts.CreateBatch(ctx, accounts); err != nil {
		return nil, fmt.Errorf("store chart: %w", err)
	}

	evt := event.NewChartImported(tenantID, len(accounts))
	if err := uc.publisher.Publish(ctx, TopicLedger, evt); err != nil {
		uc.logger.WarnContext(ctx, "chart imported event not published", "tenant_id", tenantID, "error", err)
	}

	return accounts, nil
}
