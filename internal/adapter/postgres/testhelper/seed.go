package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given role and returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role ...domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	r := domain.UserRoleUser
	if len(role) > 0 {
		r = role[0]
	}

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:          uuid.New(),
		Email:       "testuser-" + suffix + "@example.com",
		DisplayName: "Test User " + suffix,
		Role:        r,
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, display_name, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.DisplayName, string(user.Role), user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedCampaign creates a campaign owned by creator with the given status and
// end date. Goal defaults to 1000; override via the mutators on the returned
// value plus a direct UPDATE if a test needs more.
func SeedCampaign(t *testing.T, pool *pgxpool.Pool, creator domain.User, status domain.CampaignStatus, endDate time.Time) domain.Campaign {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	campaign := domain.Campaign{
		ID:            uuid.New(),
		Title:         "Test Campaign " + suffix,
		Description:   "Seeded campaign",
		GoalAmount:    decimal.NewFromInt(1000),
		CurrentAmount: decimal.Zero,
		Status:        status,
		EndDate:       endDate,
		CurrentStep:   1,
		CreatorID:     creator.ID,
		BeneficiaryID: creator.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO campaigns (id, title, description, goal_amount, current_amount, status,
		                        end_date, current_step, creator_id, beneficiary_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		campaign.ID, campaign.Title, campaign.Description, campaign.GoalAmount,
		campaign.CurrentAmount, string(campaign.Status), campaign.EndDate, campaign.CurrentStep,
		campaign.CreatorID, campaign.BeneficiaryID, campaign.CreatedAt, campaign.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCampaign insert: %v", err)
	}

	return campaign
}

// SeedPledge creates a pledge by contributor against the campaign.
func SeedPledge(t *testing.T, pool *pgxpool.Pool, campaign domain.Campaign, contributor domain.User, amount decimal.Decimal, status domain.PledgeStatus) domain.Pledge {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	pledge := domain.Pledge{
		ID:            uuid.New(),
		CampaignID:    campaign.ID,
		ContributorID: contributor.ID,
		Amount:        amount,
		Status:        status,
		IsAnonymous:   false,
		PromisedAt:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if status == domain.PledgeStatusPaid {
		paidAt := now
		pledge.PaidAt = &paidAt
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO pledges (id, campaign_id, contributor_id, amount, status, message,
		                      is_anonymous, promised_at, paid_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		pledge.ID, pledge.CampaignID, pledge.ContributorID, pledge.Amount, string(pledge.Status),
		pledge.Message, pledge.IsAnonymous, pledge.PromisedAt, pledge.PaidAt,
		pledge.CreatedAt, pledge.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPledge insert: %v", err)
	}

	return pledge
}
