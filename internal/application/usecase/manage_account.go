package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// ManageAccount covers chart-of-accounts provisioning: adding accounts and
// removing ones nothing references.
type ManageAccount struct {
	accounts port.AccountRepository
}

func NewManageAccount(accounts port.AccountRepository) *ManageAccount {
	return &ManageAccount{accounts: accounts}
}

// Create validates the type and parent reference and persists a new active
// account.
func (uc *ManageAccount) Create(ctx context.Context, req dto.CreateAccountRequest) (model.Account, error) {
	accountType, err := valueobject.ParseAccountType(req.Type)
	if err != nil {
		return model.Account{}, apperr.Validation(apperr.CodeUnknownAccount, "%s", err)
	}

	if req.ParentID != nil {
		parent, err := uc.accounts.FindByID(ctx, req.TenantID, *req.ParentID)
		if err != nil {
			return model.Account{}, fmt.Errorf("resolve parent: %w", err)
		}
		if parent.Type != accountType {
			return model.Account{}, apperr.Validation(apperr.CodeUnknownAccount,
				"parent %s is %s, child must match", parent.Code, parent.Type)
		}
	}

	account := model.Account{
		ID:          uuid.New(),
		TenantID:    req.TenantID,
		Code:        req.Code,
		Name:        req.Name,
		Type:        accountType,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		TaxCategory: req.TaxCategory,
		IsActive:    true,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return model.Account{}, fmt.Errorf("store account: %w", err)
	}
	return account, nil
}

// Get retrieves one account.
func (uc *ManageAccount) Get(ctx context.Context, tenantID, accountID uuid.UUID) (model.Account, error) {
	return uc.accounts.FindByID(ctx, tenantID, accountID)
}

// List returns the tenant's full chart ordered by code.
func (uc *ManageAccount) List(ctx context.Context, tenantID uuid.UUID) ([]model.Account, error) {
	return uc.accounts.ListByTenant(ctx, tenantID)
}

// Delete removes an account that has no children and no postings.
func (uc *ManageAccount) Delete(ctx context.Context, tenantID, accountID uuid.UUID) error {
	if _, err := uc.accounts.FindByID(ctx, tenantID, accountID); err != nil {
		return err
	}

	hasChildren, err := uc.accounts.HasChildren(ctx, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("check children: %w", err)
	}
	if hasChildren {
		return apperr.Integrity(apperr.CodeHasChildren,
			"account %s has child accounts", accountID)
	}

	referenced, err := uc.accounts.IsReferenced(ctx, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("check references: %w", err)
	}
	if referenced {
		return apperr.Integrity(apperr.CodeInUse,
			"account %s has journal lines posted to it", accountID)
	}

	return uc.accounts.Delete(ctx, tenantID, accountID)
}
