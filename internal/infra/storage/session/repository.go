package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingWizard/pkg/psqlbuilder"
)

const table = "wizard_sessions"

// Repository репозиторий сохранённых сессий мастера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save создает или обновляет сессию
func (r *Repository) Save(ctx context.Context, record *Record) error {
	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "payload", "cart_hash", "step_id", "created_at", "updated_at").
		Values(record.ID, record.Payload, record.CartHash, record.StepID, record.UpdatedAt, record.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			payload = EXCLUDED.payload,
			cart_hash = EXCLUDED.cart_hash,
			step_id = EXCLUDED.step_id,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// Get получает сессию по ID
func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	query, args, err := psqlbuilder.Select("id", "payload", "cart_hash", "step_id", "created_at", "updated_at").
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var record Record
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.Payload,
		&record.CartHash,
		&record.StepID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan session: %v", ErrScanRow, err)
	}

	return &record, nil
}

// Delete удаляет сессию
func (r *Repository) Delete(ctx context.Context, id string) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteOlderThan удаляет сессии, не обновлявшиеся с before. Возвращает число удалённых.
func (r *Repository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Lt{"updated_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - rows affected: %v", ErrExecQuery, err)
	}
	return rows, nil
}
