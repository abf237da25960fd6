package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, telegram_id, username, first_name, last_name, role, is_active, restriction_policy, created_at`

type UserPostgresRepository struct {
	*base.Repository
}

func NewUserPostgresRepository(db base.Querier) *UserPostgresRepository {
	return &UserPostgresRepository{Repository: base.NewRepository(db)}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.IsActive,
		&user.RestrictionPolicy,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создаёт нового пользователя
func (r *UserPostgresRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name, role, is_active, restriction_policy)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.DB().QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsActive,
		user.RestrictionPolicy,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserPostgresRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.DB().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserPostgresRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.DB().QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return user, nil
}

// ListTeachers получает всех активных учителей
func (r *UserPostgresRepository) ListTeachers(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = 'teacher' AND is_active
		ORDER BY first_name, id
	`

	rows, err := r.DB().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	return teachers, nil
}

// RestrictionPolicies получает политики ограничений пользователей.
// Неизвестные ID в результат не попадают.
func (r *UserPostgresRepository) RestrictionPolicies(ctx context.Context, ids []int64) (map[int64]model.RestrictionPolicy, error) {
	policies := make(map[int64]model.RestrictionPolicy, len(ids))
	if len(ids) == 0 {
		return policies, nil
	}

	query := `SELECT id, restriction_policy FROM users WHERE id = ANY($1)`

	rows, err := r.DB().Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get restriction policies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     int64
			policy model.RestrictionPolicy
		)
		if err := rows.Scan(&id, &policy); err != nil {
			return nil, fmt.Errorf("scan restriction policy: %w", err)
		}
		policies[id] = policy
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get restriction policies: %w", err)
	}

	return policies, nil
}

// SetRestrictionPolicy обновляет политику ограничений
func (r *UserPostgresRepository) SetRestrictionPolicy(ctx context.Context, id int64, policy model.RestrictionPolicy) error {
	query := `UPDATE users SET restriction_policy = $1 WHERE id = $2`

	affected, err := r.ExecAffected(ctx, query, policy, id)
	if err != nil {
		return fmt.Errorf("set restriction policy: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}
