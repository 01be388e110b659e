package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wizard step bounds for the campaign creation flow. CurrentStep is only
// meaningful while the campaign is in DRAFT.
const (
	CampaignMinStep = 1
	CampaignMaxStep = 5
)

// Campaign is a time-bounded fundraising goal owned by a creator.
//
// CurrentAmount is derived: it always equals the sum of the campaign's
// PENDING and PAID pledge amounts as re-derived by the aggregation engine
// after every pledge-affecting write. Nothing else may write it, and it is
// never incremented in place.
type Campaign struct {
	ID            uuid.UUID
	Title         string
	Description   string
	GoalAmount    decimal.Decimal
	CurrentAmount decimal.Decimal
	Status        CampaignStatus
	EndDate       time.Time
	CurrentStep   int
	CreatorID     uuid.UUID
	BeneficiaryID uuid.UUID
	CategoryID    *uuid.UUID
	CoverImageURL *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// GoalReached reports whether the collected total meets or exceeds the goal.
func (c *Campaign) GoalReached() bool {
	return c.CurrentAmount.GreaterThanOrEqual(c.GoalAmount)
}

// Remaining returns the amount still needed to reach the goal, floored at zero.
func (c *Campaign) Remaining() decimal.Decimal {
	rem := c.GoalAmount.Sub(c.CurrentAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// ProgressPercent returns the collected total as a percentage of the goal,
// rounded to two decimal places. A zero goal yields zero.
func (c *Campaign) ProgressPercent() decimal.Decimal {
	if c.GoalAmount.IsZero() {
		return decimal.Zero
	}
	return c.CurrentAmount.Div(c.GoalAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

// Expired reports whether the campaign's deadline has passed at the given instant.
func (c *Campaign) Expired(now time.Time) bool {
	return c.EndDate.Before(now)
}
