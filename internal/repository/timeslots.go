package repository

import (
	"context"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (r *Repository) CreateTimeslot(ts *domain.Timeslot) error {
	query := `
		INSERT INTO timeslots (label, start_time, end_time, group_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ts.Label, ts.StartTime, ts.EndTime, ts.Group}
	dst := []any{&ts.ID, &ts.CreatedAt, &ts.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllTimeslots() ([]*domain.Timeslot, error) {
	query := `
		SELECT id, label, start_time, end_time, group_key, created_at, version
		FROM timeslots
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timeslots := []*domain.Timeslot{}
	for rows.Next() {
		var ts domain.Timeslot
		dst := []any{&ts.ID, &ts.Label, &ts.StartTime, &ts.EndTime, &ts.Group, &ts.CreatedAt, &ts.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		timeslots = append(timeslots, &ts)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return timeslots, nil
}

func (r *Repository) GetTimeslotByID(id int64) (*domain.Timeslot, error) {
	query := `
		SELECT label, start_time, end_time, group_key, created_at, version
		FROM timeslots WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ts := &domain.Timeslot{
		ID: id,
	}

	dst := []any{&ts.Label, &ts.StartTime, &ts.EndTime, &ts.Group, &ts.CreatedAt, &ts.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return ts, nil
}

func (r *Repository) UpdateTimeslot(ts *domain.Timeslot) error {
	query := `
		UPDATE timeslots
		SET
			label = $1,
			start_time = $2,
			end_time = $3,
			group_key = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ts.Label, ts.StartTime, ts.EndTime, ts.Group, ts.ID, ts.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ts.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTimeslot(id int64) error {
	query := `
		DELETE FROM timeslots WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
