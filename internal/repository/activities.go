package repository

import (
	"context"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (r *Repository) CreateActivity(a *domain.Activity) error {
	query := `
		INSERT INTO activities (title, description, category, group_key, max_capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{a.Title, a.Description, a.Category, a.Group, a.MaxCapacity}
	dst := []any{&a.ID, &a.CreatedAt, &a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllActivities() ([]*domain.Activity, error) {
	query := `
		SELECT id, title, description, category, group_key, max_capacity, created_at, version
		FROM activities
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []*domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		dst := []any{&a.ID, &a.Title, &a.Description, &a.Category, &a.Group, &a.MaxCapacity, &a.CreatedAt, &a.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *Repository) GetActivityByID(id int64) (*domain.Activity, error) {
	query := `
		SELECT title, description, category, group_key, max_capacity, created_at, version
		FROM activities WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	a := &domain.Activity{
		ID: id,
	}

	dst := []any{&a.Title, &a.Description, &a.Category, &a.Group, &a.MaxCapacity, &a.CreatedAt, &a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) UpdateActivity(a *domain.Activity) error {
	query := `
		UPDATE activities
		SET
			title = $1,
			description = $2,
			category = $3,
			group_key = $4,
			max_capacity = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{a.Title, a.Description, a.Category, a.Group, a.MaxCapacity, a.ID, a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteActivity(id int64) error {
	query := `
		DELETE FROM activities WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
