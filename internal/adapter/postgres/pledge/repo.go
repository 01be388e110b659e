// Package pledge implements the Pledge repository using PostgreSQL.
// It also provides the aggregate SUM the aggregation engine re-derives
// campaign totals from.
package pledge

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

const pledgeColumns = `id, campaign_id, contributor_id, amount, status, message, is_anonymous,
promised_at, paid_at, created_at, updated_at`

// Repo provides pledge persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pledge repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getPledgeSQL = `SELECT ` + pledgeColumns + ` FROM pledges WHERE id = $1`

// GetByID returns a pledge by primary key.
// Returns domain.ErrNotFound if the pledge does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, getPledgeSQL, id)
	p, err := scanPledge(row)
	if err != nil {
		return nil, mapError(err, "pledge", id)
	}

	return p, nil
}

// ListByCampaign returns the campaign's pledges, newest first, optionally
// restricted to the given statuses. The reminder and expiration sweeps use
// it with PENDING to find contributors who still owe their pledge.
func (r *Repo) ListByCampaign(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error) {
	builder := psql.Select(pledgeColumns).
		From("pledges").
		Where(sq.Eq{"campaign_id": campaignID}).
		OrderBy("promised_at DESC")

	if len(statuses) > 0 {
		ss := make([]string, len(statuses))
		for i, s := range statuses {
			ss[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": ss})
	}

	return r.queryPledges(ctx, builder, "list pledges by campaign")
}

// ListByContributor returns all pledges made by a contributor, newest first.
func (r *Repo) ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*domain.Pledge, error) {
	builder := psql.Select(pledgeColumns).
		From("pledges").
		Where(sq.Eq{"contributor_id": contributorID}).
		OrderBy("promised_at DESC")

	return r.queryPledges(ctx, builder, "list pledges by contributor")
}

// SumAmounts returns the sum of pledge amounts for a campaign over the given
// statuses. This is the aggregation engine's source of truth: a full
// re-derivation from rows, never an incremental counter.
func (r *Repo) SumAmounts(ctx context.Context, campaignID uuid.UUID, statuses []domain.PledgeStatus) (decimal.Decimal, error) {
	ss := make([]string, len(statuses))
	for i, s := range statuses {
		ss[i] = s.String()
	}

	query, args, err := psql.Select("COALESCE(SUM(amount), 0)").
		From("pledges").
		Where(sq.Eq{"campaign_id": campaignID}).
		Where(sq.Eq{"status": ss}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build sum pledges query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum pledges for campaign %s: %w", campaignID, err)
	}

	return total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createPledgeSQL = `
INSERT INTO pledges (id, campaign_id, contributor_id, amount, status, message, is_anonymous,
                     promised_at, paid_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + pledgeColumns

// Create inserts a new pledge and returns the persisted row.
func (r *Repo) Create(ctx context.Context, p *domain.Pledge) (*domain.Pledge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createPledgeSQL,
		p.ID, p.CampaignID, p.ContributorID, p.Amount, p.Status.String(), p.Message,
		p.IsAnonymous, p.PromisedAt, p.PaidAt, p.CreatedAt, p.UpdatedAt,
	)
	created, err := scanPledge(row)
	if err != nil {
		return nil, mapError(err, "pledge", p.ID)
	}

	return created, nil
}

// Update persists the pledge's editable fields (amount, message, anonymity)
// and returns the updated row. Status and timestamps change only through
// SetStatus.
func (r *Repo) Update(ctx context.Context, p *domain.Pledge) (*domain.Pledge, error) {
	query, args, err := psql.Update("pledges").
		Set("amount", p.Amount).
		Set("message", p.Message).
		Set("is_anonymous", p.IsAnonymous).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + pledgeColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update pledge query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	row := q.QueryRow(ctx, query, args...)
	updated, err := scanPledge(row)
	if err != nil {
		return nil, mapError(err, "pledge", p.ID)
	}

	return updated, nil
}

const setStatusSQL = `
UPDATE pledges
SET status = $1,
    paid_at = CASE WHEN $1 = 'PAID' THEN COALESCE(paid_at, now()) ELSE paid_at END,
    updated_at = now()
WHERE id = $2 AND status = $3
RETURNING ` + pledgeColumns

// SetStatus atomically moves a pledge from one status to another.
// paid_at is set exactly once, on the first transition into PAID.
// Returns nil pledge and false (without error) when the pledge was not in
// the expected status.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, from, to domain.PledgeStatus) (*domain.Pledge, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, setStatusSQL, to.String(), id, from.String())
	updated, err := scanPledge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, mapError(err, "pledge", id)
	}

	return updated, true, nil
}

const deletePledgeSQL = `DELETE FROM pledges WHERE id = $1`

// Delete removes a pledge. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deletePledgeSQL, id)
	if err != nil {
		return mapError(err, "pledge", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pledge %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) queryPledges(ctx context.Context, builder sq.SelectBuilder, op string) ([]*domain.Pledge, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	pledges := make([]*domain.Pledge, 0)
	for rows.Next() {
		p, err := scanPledge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pledge: %w", err)
		}
		pledges = append(pledges, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return pledges, nil
}

// scanPledge reads one pledge row from either pgx.Row or pgx.Rows.
func scanPledge(row pgx.Row) (*domain.Pledge, error) {
	var (
		p      domain.Pledge
		status string
	)
	err := row.Scan(
		&p.ID, &p.CampaignID, &p.ContributorID, &p.Amount, &status, &p.Message,
		&p.IsAnonymous, &p.PromisedAt, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PledgeStatus(status)
	return &p, nil
}

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
