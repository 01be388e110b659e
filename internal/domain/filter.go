package domain

import (
	"time"

	"github.com/google/uuid"
)

// CampaignFilter defines parameters for listing campaigns.
type CampaignFilter struct {
	// Statuses restricts the result to campaigns in any of the given statuses.
	// Empty means no status filter.
	Statuses []CampaignStatus

	// CreatorID filters campaigns owned by the given user.
	CreatorID *uuid.UUID

	// EndBefore keeps campaigns whose end_date is strictly before the instant.
	// The expiration sweep uses this with now() to find expired campaigns.
	EndBefore *time.Time

	// EndAfter keeps campaigns whose end_date is at or after the instant.
	EndAfter *time.Time

	// After is a keyset cursor: only rows strictly after (EndDate, ID) are
	// returned. Rows do not shift under a cursor the way they do under an
	// offset, so sweeps paging a live table neither skip nor revisit
	// campaigns. Combine with SortBy "end_date" ascending.
	After *CampaignCursor

	// SortBy determines the sort column: "end_date", "created_at", "current_amount".
	// Default: "created_at".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "DESC".
	SortOrder string

	// Limit is the maximum number of campaigns to return. Default: 50, max: 500.
	Limit int

	// Offset is the number of campaigns to skip.
	Offset int
}

// CampaignCursor marks the last row of a page for keyset pagination. The ID
// breaks ties between campaigns sharing an end date.
type CampaignCursor struct {
	EndDate time.Time
	ID      uuid.UUID
}
