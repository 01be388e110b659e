// Package campaign implements the Campaign repository using PostgreSQL.
// Fixed-shape queries use raw SQL constants; filtered listings are built
// with squirrel.
package campaign

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/fundmate/fundmate-backend/internal/adapter/postgres"
	"github.com/fundmate/fundmate-backend/internal/domain"
)

// psql builds queries with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const campaignColumns = `id, title, description, goal_amount, current_amount, status, end_date,
current_step, creator_id, beneficiary_id, category_id, cover_image_url, created_at, updated_at`

// Repo provides campaign persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new campaign repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getCampaignSQL = `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

// GetByID returns a campaign by primary key.
// Returns domain.ErrNotFound if the campaign does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, getCampaignSQL, id)
	c, err := scanCampaign(row)
	if err != nil {
		return nil, mapError(err, "campaign", id)
	}

	return c, nil
}

// List returns campaigns matching the filter, ordered and paginated.
// Returns an empty slice when nothing matches.
func (r *Repo) List(ctx context.Context, f domain.CampaignFilter) ([]*domain.Campaign, error) {
	n := normalizeFilter(f.SortBy, f.SortOrder, f.Limit, f.Offset)

	builder := psql.Select(campaignColumns).From("campaigns")

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if f.CreatorID != nil {
		builder = builder.Where(sq.Eq{"creator_id": *f.CreatorID})
	}
	if f.EndBefore != nil {
		builder = builder.Where(sq.Lt{"end_date": *f.EndBefore})
	}
	if f.EndAfter != nil {
		builder = builder.Where(sq.GtOrEq{"end_date": *f.EndAfter})
	}
	if f.After != nil {
		// Row-value comparison so ties on end_date fall back to the id.
		builder = builder.Where(sq.Expr("(end_date, id) > (?, ?)", f.After.EndDate, f.After.ID))
	}

	builder = builder.
		OrderBy(n.sortBy+" "+n.sortOrder, "id "+n.sortOrder).
		Limit(n.limit).
		Offset(n.offset)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list campaigns query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaigns rows: %w", err)
	}

	return campaigns, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createCampaignSQL = `
INSERT INTO campaigns (id, title, description, goal_amount, current_amount, status, end_date,
                       current_step, creator_id, beneficiary_id, category_id, cover_image_url,
                       created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + campaignColumns

// Create inserts a new campaign and returns the persisted row.
func (r *Repo) Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createCampaignSQL,
		c.ID, c.Title, c.Description, c.GoalAmount, c.CurrentAmount, c.Status.String(),
		c.EndDate, c.CurrentStep, c.CreatorID, c.BeneficiaryID, c.CategoryID, c.CoverImageURL,
		c.CreatedAt, c.UpdatedAt,
	)
	created, err := scanCampaign(row)
	if err != nil {
		return nil, mapError(err, "campaign", c.ID)
	}

	return created, nil
}

// Update persists the campaign's mutable fields and returns the updated row.
// CurrentAmount and Status are deliberately excluded: they change only
// through SetCurrentAmount and SetStatus.
func (r *Repo) Update(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	query, args, err := psql.Update("campaigns").
		Set("title", c.Title).
		Set("description", c.Description).
		Set("goal_amount", c.GoalAmount).
		Set("end_date", c.EndDate).
		Set("current_step", c.CurrentStep).
		Set("category_id", c.CategoryID).
		Set("cover_image_url", c.CoverImageURL).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING " + campaignColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update campaign query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	row := q.QueryRow(ctx, query, args...)
	updated, err := scanCampaign(row)
	if err != nil {
		return nil, mapError(err, "campaign", c.ID)
	}

	return updated, nil
}

const setStatusSQL = `
UPDATE campaigns SET status = $1, updated_at = now()
WHERE id = $2 AND status = $3`

// SetStatus atomically moves a campaign from one status to another.
// The compare-and-set on the current status makes concurrent transitions
// safe: exactly one caller wins. Returns false (without error) when the
// campaign was not in the expected status.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, from, to domain.CampaignStatus) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, setStatusSQL, to.String(), id, from.String())
	if err != nil {
		return false, mapError(err, "campaign", id)
	}

	return tag.RowsAffected() > 0, nil
}

const setCurrentAmountSQL = `
UPDATE campaigns SET current_amount = $1, updated_at = now()
WHERE id = $2`

// SetCurrentAmount overwrites the campaign's derived collected total.
// Only the aggregation engine calls this, always with a freshly re-derived
// sum; the overwrite (rather than increment) is what keeps concurrent
// pledge writes self-correcting.
func (r *Repo) SetCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, setCurrentAmountSQL, amount, id)
	if err != nil {
		return mapError(err, "campaign", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

// scanCampaign reads one campaign row from either pgx.Row or pgx.Rows.
func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c      domain.Campaign
		status string
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.GoalAmount, &c.CurrentAmount, &status,
		&c.EndDate, &c.CurrentStep, &c.CreatorID, &c.BeneficiaryID, &c.CategoryID,
		&c.CoverImageURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = domain.CampaignStatus(status)
	return &c, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}
