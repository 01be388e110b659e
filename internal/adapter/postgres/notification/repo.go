// Package notification implements the in-app notification sink and the
// reminder dedupe markers used by the daily sweep.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/fundmate/fundmate-backend/internal/adapter/postgres"
	"github.com/fundmate/fundmate-backend/internal/domain"
)

// psql builds queries with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertNotificationSQL = `
INSERT INTO notifications (id, recipient_id, category, title, message, action_reference, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())`

// Insert persists an in-app notification row.
func (r *Repo) Insert(ctx context.Context, n *domain.Notification) error {
	metadata := n.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("marshal notification metadata: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err = q.Exec(ctx, insertNotificationSQL,
		n.ID, n.RecipientID, n.Category.String(), n.Title, n.Message, n.ActionReference, raw,
	)
	if err != nil {
		return fmt.Errorf("insert notification %s: %w", n.ID, err)
	}

	return nil
}

// ListByRecipient returns a recipient's notifications, newest first.
func (r *Repo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := psql.
		Select("id, recipient_id, category, title, message, action_reference, metadata, read_at, created_at").
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var (
			n        domain.Notification
			category string
			raw      []byte
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &category, &n.Title, &n.Message,
			&n.ActionReference, &raw, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Category = domain.NotificationCategory(category)
		if err := json.Unmarshal(raw, &n.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal notification metadata: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications rows: %w", err)
	}

	return notifications, nil
}

const markReadSQL = `
UPDATE notifications SET read_at = now()
WHERE id = $1 AND recipient_id = $2 AND read_at IS NULL`

// MarkRead marks a notification as read. Idempotent.
// Returns domain.ErrNotFound if the row does not exist or belongs to another user.
func (r *Repo) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, markReadSQL, notificationID, recipientID)
	if err != nil {
		return fmt.Errorf("mark notification read %s: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		err := q.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND recipient_id = $2)`,
			notificationID, recipientID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check notification %s: %w", notificationID, err)
		}
		if !exists {
			return fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Reminder dedupe markers
// ---------------------------------------------------------------------------

const markReminderSQL = `
INSERT INTO campaign_reminders (campaign_id, days_remaining)
VALUES ($1, $2)
ON CONFLICT (campaign_id, days_remaining) DO NOTHING`

// MarkReminderSent records that the reminder for the given milestone was
// sent. Returns false when a marker already existed, which is how the daily
// sweep stays idempotent within a calendar day.
func (r *Repo) MarkReminderSent(ctx context.Context, campaignID uuid.UUID, daysRemaining int) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, markReminderSQL, campaignID, daysRemaining)
	if err != nil {
		return false, fmt.Errorf("mark reminder sent for campaign %s: %w", campaignID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// WasReminderSent reports whether the reminder milestone was already sent.
func (r *Repo) WasReminderSent(ctx context.Context, campaignID uuid.UUID, daysRemaining int) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var sent bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM campaign_reminders WHERE campaign_id = $1 AND days_remaining = $2)`,
		campaignID, daysRemaining,
	).Scan(&sent)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("check reminder for campaign %s: %w", campaignID, err)
	}

	return sent, nil
}
