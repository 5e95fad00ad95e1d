package model

import (
	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// Account is one node of the tenant's chart of accounts. ParentID forms a
// forest; Code is unique per tenant and sortable.
type Account struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Code        string
	Name        string
	Type        valueobject.AccountType
	ParentID    *uuid.UUID
	SortOrder   int
	TaxCategory string
	IsActive    bool
}

// AccountIndex is an in-memory view of a tenant's chart keyed by account ID,
// used for hierarchy resolution and report annotation.
type AccountIndex struct {
	byID map[uuid.UUID]Account
}

// NewAccountIndex builds an index over the given accounts.
func NewAccountIndex(accounts []Account) AccountIndex {
	byID := make(map[uuid.UUID]Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return AccountIndex{byID: byID}
}

// Get returns the account with the given ID.
func (idx AccountIndex) Get(id uuid.UUID) (Account, bool) {
	a, ok := idx.byID[id]
	return a, ok
}

// Len returns the number of indexed accounts.
func (idx AccountIndex) Len() int { return len(idx.byID) }

// All returns the indexed accounts in unspecified order.
func (idx AccountIndex) All() []Account {
	out := make([]Account, 0, len(idx.byID))
	for _, a := range idx.byID {
		out = append(out, a)
	}
	return out
}

// HierarchyLevel returns the number of ancestor hops from the account to its
// root: 0 for a root account, 1 for its children, and so on. A visited set
// guards the parent walk so a corrupted cyclic chart reports an error instead
// of looping forever.
func (idx AccountIndex) HierarchyLevel(id uuid.UUID) (int, error) {
	current, ok := idx.byID[id]
	if !ok {
		return 0, apperr.NotFound(apperr.CodeUnknownAccount, "account %s not in chart", id)
	}

	visited := map[uuid.UUID]struct{}{id: {}}
	level := 0
	for current.ParentID != nil {
		parentID := *current.ParentID
		if _, seen := visited[parentID]; seen {
			return 0, apperr.Integrity(apperr.CodeCycleDetected,
				"account %s participates in a parent cycle", id)
		}
		visited[parentID] = struct{}{}

		parent, ok := idx.byID[parentID]
		if !ok {
			// Dangling parent reference; treat the last resolvable node as root.
			break
		}
		current = parent
		level++
	}
	return level, nil
}
