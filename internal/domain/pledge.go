package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pledge is a contributor's monetary commitment toward a campaign. It counts
// toward the campaign's collected total from the moment it is made, before
// any actual payment is confirmed.
//
// IsAnonymous only affects how the pledge is displayed. It has no bearing on
// aggregation or authorization: the contributor reference stays intact and
// anonymous pledges are summed like any other.
type Pledge struct {
	ID            uuid.UUID
	CampaignID    uuid.UUID
	ContributorID uuid.UUID
	Amount        decimal.Decimal
	Status        PledgeStatus
	Message       *string
	IsAnonymous   bool
	PromisedAt    time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOwnedBy reports whether the given user is the pledge's contributor.
func (p *Pledge) IsOwnedBy(userID uuid.UUID) bool {
	return p.ContributorID == userID
}
