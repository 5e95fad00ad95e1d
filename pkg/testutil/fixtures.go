package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing.
var (
	TestTenantID  = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestUserID    = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestPeriodID  = uuid.MustParse("00000000-0000-0000-0000-000000000030")
	TestAccountID = uuid.MustParse("00000000-0000-0000-0000-000000000020")
)
