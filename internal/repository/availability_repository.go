package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type AvailabilityPostgresRepository struct {
	*base.Repository
}

func NewAvailabilityPostgresRepository(db base.Querier) *AvailabilityPostgresRepository {
	return &AvailabilityPostgresRepository{Repository: base.NewRepository(db)}
}

// ListBySubjects получает записи доступности пользователей за период [from, to]
func (r *AvailabilityPostgresRepository) ListBySubjects(ctx context.Context, subjectIDs []int64, from, to model.Date) ([]model.AvailabilityRecord, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT user_id, available_date, morning, afternoon, evening, updated_at
		FROM availability
		WHERE user_id = ANY($1) AND available_date BETWEEN $2 AND $3
		ORDER BY user_id, available_date
	`

	rows, err := r.DB().Query(ctx, query, subjectIDs, from.Time(), to.Time())
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()

	var records []model.AvailabilityRecord
	for rows.Next() {
		var (
			record model.AvailabilityRecord
			date   time.Time
		)
		err := rows.Scan(
			&record.SubjectID,
			&date,
			&record.Slots.Morning,
			&record.Slots.Afternoon,
			&record.Slots.Evening,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		record.Date = model.DateOf(date)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	return records, nil
}

// UpsertBatch записывает строки доступности одним пакетом.
// Атомарность обеспечивается транзакцией вызывающего кода.
func (r *AvailabilityPostgresRepository) UpsertBatch(ctx context.Context, records []model.AvailabilityRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO availability (user_id, available_date, morning, afternoon, evening, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id, available_date)
		DO UPDATE SET
			morning = EXCLUDED.morning,
			afternoon = EXCLUDED.afternoon,
			evening = EXCLUDED.evening,
			updated_at = now()
	`

	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(query,
			record.SubjectID,
			record.Date.Time(),
			record.Slots.Morning,
			record.Slots.Afternoon,
			record.Slots.Evening,
		)
	}

	if err := r.ExecBatch(ctx, batch); err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}

	return nil
}
