package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/statsrecord/stats-api/internal/domain/user"
	"github.com/statsrecord/stats-api/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	const query = `
INSERT INTO users (id, first_name, last_name, email, password_hash, is_player, is_admin, is_superuser, subscribed, team_id, height_cm, date_of_birth, primary_position, created_by, updated_by, created_at, updated_at)
VALUES (:id, :first_name, :last_name, :email, :password_hash, :is_player, :is_admin, :is_superuser, :subscribed, :team_id, :height_cm, :date_of_birth, :primary_position, :created_by, :updated_by, :created_at, :updated_at)`

	insertSQL, args, err := sqlx.Named(query, userNamedArgs(u))
	if err != nil {
		return fmt.Errorf("bind insert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertSQL), args...); err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE lower(email) = lower($1)`, userColumns)

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by email: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.Filter) ([]user.User, error) {
	builder := querybuilder.Select(userColumns).From("users").OrderBy("created_at ASC")
	if filter.PlayersOnly {
		builder.Where(querybuilder.Eq("is_player", true))
	}
	if filter.TeamID != "" {
		builder.Where(querybuilder.Eq("team_id", filter.TeamID))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	const query = `
UPDATE users SET
    first_name = :first_name,
    last_name = :last_name,
    email = :email,
    password_hash = :password_hash,
    is_player = :is_player,
    is_admin = :is_admin,
    is_superuser = :is_superuser,
    subscribed = :subscribed,
    team_id = :team_id,
    height_cm = :height_cm,
    date_of_birth = :date_of_birth,
    primary_position = :primary_position,
    updated_by = :updated_by,
    updated_at = :updated_at
WHERE id = :id`

	updateSQL, args, err := sqlx.Named(query, userNamedArgs(u))
	if err != nil {
		return fmt.Errorf("bind update user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(updateSQL), args...); err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
