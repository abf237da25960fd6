package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type FeePostgresRepository struct {
	*base.Repository
}

func NewFeePostgresRepository(db base.Querier) *FeePostgresRepository {
	return &FeePostgresRepository{Repository: base.NewRepository(db)}
}

// ListByStudents получает отметки оплат учеников за период [from, to]
func (r *FeePostgresRepository) ListByStudents(ctx context.Context, studentIDs []int64, from, to model.Date) ([]model.FeeRecord, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT student_id, fee_date, morning, afternoon, evening, updated_at
		FROM fee_entries
		WHERE student_id = ANY($1) AND fee_date BETWEEN $2 AND $3
		ORDER BY student_id, fee_date
	`

	rows, err := r.DB().Query(ctx, query, studentIDs, from.Time(), to.Time())
	if err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	defer rows.Close()

	var records []model.FeeRecord
	for rows.Next() {
		var (
			record model.FeeRecord
			date   time.Time
		)
		err := rows.Scan(
			&record.StudentID,
			&date,
			&record.Slots.Morning,
			&record.Slots.Afternoon,
			&record.Slots.Evening,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan fee: %w", err)
		}
		record.Date = model.DateOf(date)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}

	return records, nil
}

// UpsertBatch записывает отметки оплат одним пакетом
func (r *FeePostgresRepository) UpsertBatch(ctx context.Context, records []model.FeeRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO fee_entries (student_id, fee_date, morning, afternoon, evening, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (student_id, fee_date)
		DO UPDATE SET
			morning = EXCLUDED.morning,
			afternoon = EXCLUDED.afternoon,
			evening = EXCLUDED.evening,
			updated_at = now()
	`

	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(query,
			record.StudentID,
			record.Date.Time(),
			record.Slots.Morning,
			record.Slots.Afternoon,
			record.Slots.Evening,
		)
	}

	if err := r.ExecBatch(ctx, batch); err != nil {
		return fmt.Errorf("upsert fees: %w", err)
	}

	return nil
}
