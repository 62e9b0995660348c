package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/allisson/crm/internal/database"
	apperrors "github.com/allisson/crm/internal/errors"
	settingsDomain "github.com/allisson/crm/internal/settings/domain"
)

// MySQLSettingRepository implements Setting persistence for MySQL.
type MySQLSettingRepository struct {
	db *sql.DB
}

// GetMany returns the stored values of keys in one query.
func (m *MySQLSettingRepository) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	querier := database.GetTx(ctx, m.db)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")
	query := "SELECT `key`, value FROM system_settings WHERE `key` IN (" + placeholders + ")"

	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = key
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get settings")
	}
	return scanValues(rows)
}

// List returns every stored setting ordered by key.
func (m *MySQLSettingRepository) List(ctx context.Context) ([]*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT `key`, value, updated_at FROM system_settings ORDER BY `key`"

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	return scanSettings(rows)
}

// Upsert inserts or replaces a setting.
func (m *MySQLSettingRepository) Upsert(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, m.db)

	query := "INSERT INTO system_settings (`key`, value, updated_at) VALUES (?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)"

	if _, err := querier.ExecContext(ctx, query, setting.Key, setting.Value, setting.UpdatedAt); err != nil {
		return apperrors.Wrapf(err, "failed to upsert setting %q", setting.Key)
	}
	return nil
}

// NewMySQLSettingRepository creates a new MySQL Setting repository.
func NewMySQLSettingRepository(db *sql.DB) *MySQLSettingRepository {
	return &MySQLSettingRepository{db: db}
}
