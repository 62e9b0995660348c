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

// MySQLNotificationRepository implements Notification persistence for MySQL.
type MySQLNotificationRepository struct {
	db *sql.DB
}

// Create inserts a new Notification.
func (m *MySQLNotificationRepository) Create(ctx context.Context, notification *notificationDomain.Notification) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(notification.ID)
	if err != nil {
		return err
	}
	userID, err := database.UUIDBytes(notification.UserID)
	if err != nil {
		return err
	}
	orgID, err := database.NullableUUIDBytes(notification.OrgID)
	if err != nil {
		return err
	}

	query := `INSERT INTO notifications (` + notificationColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
		orgID,
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
func (m *MySQLNotificationRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*notificationDomain.Notification, error) {
	querier := database.GetTx(ctx, m.db)

	user, err := database.UUIDBytes(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + notificationColumns + `
			  FROM notifications
			  WHERE user_id = ?
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, user, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list notifications")
	}
	defer rows.Close() //nolint:errcheck

	notifications := make([]*notificationDomain.Notification, 0)
	for rows.Next() {
		var notification notificationDomain.Notification
		var id, owner, orgID []byte
		err := rows.Scan(
			&id,
			&owner,
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
		if notification.ID, err = database.UUIDFromBytes(id); err != nil {
			return nil, err
		}
		if notification.UserID, err = database.UUIDFromBytes(owner); err != nil {
			return nil, err
		}
		if notification.OrgID, err = database.NullableUUIDFromBytes(orgID); err != nil {
			return nil, err
		}
		notifications = append(notifications, &notification)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate notifications")
	}
	return notifications, nil
}

// Count returns the number of notifications of a user.
func (m *MySQLNotificationRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, m.db)

	user, err := database.UUIDBytes(userID)
	if err != nil {
		return 0, err
	}

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = ?`, user).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count notifications")
	}
	return count, nil
}

// MarkRead sets read_at on a notification of the user.
func (m *MySQLNotificationRepository) MarkRead(
	ctx context.Context,
	userID, notificationID uuid.UUID,
	readAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := database.UUIDBytes(notificationID)
	if err != nil {
		return err
	}
	user, err := database.UUIDBytes(userID)
	if err != nil {
		return err
	}

	// MySQL reports zero affected rows for an unchanged row unless CLIENT_FOUND_ROWS is set,
	// so read_at is always written.
	query := `UPDATE notifications SET read_at = ? WHERE id = ? AND user_id = ?`

	result, err := querier.ExecContext(ctx, query, readAt, id, user)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark notification read")
	}
	return database.RequireRow(result, notificationDomain.ErrNotificationNotFound)
}

// NewMySQLNotificationRepository creates a new MySQL Notification repository.
func NewMySQLNotificationRepository(db *sql.DB) *MySQLNotificationRepository {
	return &MySQLNotificationRepository{db: db}
}
