package storage

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/money-tracker/internal/errors"
	"github.com/money-tracker/internal/models"
	"github.com/money-tracker/internal/types"
)

// PerformanceRepository handles report delivery settings. A user may register
// several weekdays; registering the same weekday twice fails with a
// uniqueness violation.
type PerformanceRepository struct {
	db *PostgresDB
}

// NewPerformanceRepository creates a new performance repository
func NewPerformanceRepository(db *PostgresDB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// Create inserts a performance setting, filling in schema defaults for
// zero-valued enum fields.
func (r *PerformanceRepository) Create(ctx context.Context, perf *models.Performance) error {
	perf.ApplyDefaults()
	if err := perf.Validate(); err != nil {
		return errors.NewValidationError("performance", err.Error())
	}

	query := `
		INSERT INTO performances (user_id, days_to_send_email, periodicity)
		VALUES ($1, $2, $3)
		RETURNING id, last_time_sent
	`

	err := r.db.Pool().QueryRow(ctx, query,
		perf.UserID,
		string(perf.DaysToSendEmail),
		string(perf.Periodicity),
	).Scan(&perf.ID, &perf.LastTimeSent)
	if err != nil {
		return mapConstraintError("create performance", err)
	}

	return nil
}

// GetByID retrieves a performance setting by ID
func (r *PerformanceRepository) GetByID(ctx context.Context, id int64) (*models.Performance, error) {
	query := `
		SELECT id, user_id, days_to_send_email, periodicity, last_time_sent
		FROM performances
		WHERE id = $1
	`

	var perf models.Performance
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&perf.ID,
		&perf.UserID,
		&perf.DaysToSendEmail,
		&perf.Periodicity,
		&perf.LastTimeSent,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("performance", id)
		}
		return nil, mapConstraintError("get performance", err)
	}

	return &perf, nil
}

// ListByUser retrieves all settings registered by a user.
func (r *PerformanceRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Performance, error) {
	query := `
		SELECT id, user_id, days_to_send_email, periodicity, last_time_sent
		FROM performances
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, mapConstraintError("list performances", err)
	}
	defer rows.Close()

	return scanPerformances(rows)
}

// ListDueForWeekday retrieves settings for subscribed users scheduled on the
// given weekday. The report mailer uses this to pick its recipients.
func (r *PerformanceRepository) ListDueForWeekday(ctx context.Context, day types.Weekday) ([]*models.Performance, error) {
	query := `
		SELECT p.id, p.user_id, p.days_to_send_email, p.periodicity, p.last_time_sent
		FROM performances p
		JOIN custom_users u ON u.id = p.user_id
		WHERE p.days_to_send_email = $1 AND u.subscribed
		ORDER BY p.id
	`

	rows, err := r.db.Pool().Query(ctx, query, string(day))
	if err != nil {
		return nil, mapConstraintError("list due performances", err)
	}
	defer rows.Close()

	return scanPerformances(rows)
}

// UpdateLastSent records when a report was last delivered for this setting.
func (r *PerformanceRepository) UpdateLastSent(ctx context.Context, id int64, sentAt time.Time) error {
	query := `UPDATE performances SET last_time_sent = $2 WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id, sentAt)
	if err != nil {
		return mapConstraintError("update last sent", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NewNotFoundError("performance", id)
	}

	return nil
}

// Delete removes a performance setting.
func (r *PerformanceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Pool().Exec(ctx, `DELETE FROM performances WHERE id = $1`, id)
	if err != nil {
		return mapConstraintError("delete performance", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NewNotFoundError("performance", id)
	}

	return nil
}

func scanPerformances(rows pgx.Rows) ([]*models.Performance, error) {
	var perfs []*models.Performance
	for rows.Next() {
		var perf models.Performance
		if err := rows.Scan(
			&perf.ID,
			&perf.UserID,
			&perf.DaysToSendEmail,
			&perf.Periodicity,
			&perf.LastTimeSent,
		); err != nil {
			return nil, mapConstraintError("scan performance", err)
		}
		perfs = append(perfs, &perf)
	}
	return perfs, rows.Err()
}
