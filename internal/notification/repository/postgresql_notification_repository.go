// Package repository implements notification persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/crm/internal/database"
	apperrors "github.com/allisson/crm/internal/errors"
	notificationDomain "github.com/allisson/crm/internal/notification/domain"
)

const notificationColumns = `id, user_id, org_id, kind, title, body, read_at, created_at`

// PostgreSQLNotificationRepository implements Notification persistence for PostgreSQL.
type PostgreSQLNotificationRepository struct {
	db *sql.DB
}

// Create inserts a new Notification.
func (p *PostgreSQLNotificationRepository) Create(
	ctx context.Context,
	notification *notificationDomain.Notification,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO notifications (` + notificationColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		notification.ID,
		notification.UserID,
		database.UUIDPtrValue(notification.OrgID),
		notification.Kind,
		notification.Title,
		notification.Body,
		notification.ReadAt,
		notification.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create notification")
	}
	return nil
}

// List returns a page of notifications of a user, newest first.
func (p *PostgreSQLNotificationRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*notificationDomain.Notification, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + notificationColumns + `
			  FROM notifications
			  WHERE user_id = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list notifications")
	}
	defer rows.Close() //nolint:errcheck

	notifications := make([]*notificationDomain.Notification, 0)
	for rows.Next() {
		var notification notificationDomain.Notification
		var orgID uuid.NullUUID
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&orgID,
			&notification.Kind,
			&notification.Title,
			&notification.Body,
			&notification.ReadAt,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan notification")
		}
		notification.OrgID = database.NullUUIDPtr(orgID)
		notifications = append(notifications, &notification)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate notifications")
	}
	return notifications, nil
}

// Count returns the number of notifications of a user.
func (p *PostgreSQLNotificationRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, p.db)

	var count int
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count notifications")
	}
	return count, nil
}

// MarkRead sets read_at on a notification of the user. Already read notifications keep their
// original timestamp.
func (p *PostgreSQLNotificationRepository) MarkRead(
	ctx context.Context,
	userID, notificationID uuid.UUID,
	readAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE notifications SET read_at = COALESCE(read_at, $1) WHERE id = $2 AND user_id = $3`

	result, err := querier.ExecContext(ctx, query, readAt, notificationID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark notification read")
	}
	return database.RequireRow(result, notificationDomain.ErrNotificationNotFound)
}

// NewPostgreSQLNotificationRepository creates a new PostgreSQL Notification repository.
func NewPostgreSQLNotificationRepository(db *sql.DB) *PostgreSQLNotificationRepository {
	return &PostgreSQLNotificationRepository{db: db}
}
