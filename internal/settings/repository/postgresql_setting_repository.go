// Package repository implements settings persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/allisson/crm/internal/database"
	apperrors "github.com/allisson/crm/internal/errors"
	settingsDomain "github.com/allisson/crm/internal/settings/domain"
)

// PostgreSQLSettingRepository implements Setting persistence for PostgreSQL.
type PostgreSQLSettingRepository struct {
	db *sql.DB
}

// GetMany returns the stored values of keys in one query.
func (p *PostgreSQLSettingRepository) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT key, value FROM system_settings WHERE key = ANY($1)`

	rows, err := querier.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get settings")
	}
	return scanValues(rows)
}

// List returns every stored setting ordered by key.
func (p *PostgreSQLSettingRepository) List(ctx context.Context) ([]*settingsDomain.Setting, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT key, value, updated_at FROM system_settings ORDER BY key`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	return scanSettings(rows)
}

// Upsert inserts or replaces a setting.
func (p *PostgreSQLSettingRepository) Upsert(ctx context.Context, setting *settingsDomain.Setting) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO system_settings (key, value, updated_at) VALUES ($1, $2, $3)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := querier.ExecContext(ctx, query, setting.Key, setting.Value, setting.UpdatedAt); err != nil {
		return apperrors.Wrapf(err, "failed to upsert setting %q", setting.Key)
	}
	return nil
}

// NewPostgreSQLSettingRepository creates a new PostgreSQL Setting repository.
func NewPostgreSQLSettingRepository(db *sql.DB) *PostgreSQLSettingRepository {
	return &PostgreSQLSettingRepository{db: db}
}

func scanValues(rows *sql.Rows) (map[string]string, error) {
	defer func() {
		_ = rows.Close()
	}()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan setting")
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate settings")
	}
	return values, nil
}

func scanSettings(rows *sql.Rows) ([]*settingsDomain.Setting, error) {
	defer func() {
		_ = rows.Close()
	}()

	settings := make([]*settingsDomain.Setting, 0)
	for rows.Next() {
		var setting settingsDomain.Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan setting")
		}
		settings = append(settings, &setting)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate settings")
	}
	return settings, nil
}
