package repository

import (
	"context"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (r *Repository) CreateParticipant(p *domain.Participant) error {
	query := `
		INSERT INTO participants (external_id, full_name, school_name, group_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, prefs_submitted, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.ExternalID, p.FullName, p.SchoolName, p.Group}
	dst := []any{&p.ID, &p.PrefsSubmitted, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllParticipants() ([]*domain.Participant, error) {
	query := `
		SELECT id, external_id, full_name, school_name, group_key, prefs_submitted, created_at, version
		FROM participants
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []*domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		dst := []any{&p.ID, &p.ExternalID, &p.FullName, &p.SchoolName, &p.Group, &p.PrefsSubmitted, &p.CreatedAt, &p.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *Repository) GetParticipantByID(id int64) (*domain.Participant, error) {
	query := `
		SELECT external_id, full_name, school_name, group_key, prefs_submitted, created_at, version
		FROM participants WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.Participant{
		ID: id,
	}

	dst := []any{&p.ExternalID, &p.FullName, &p.SchoolName, &p.Group, &p.PrefsSubmitted, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) UpdateParticipant(p *domain.Participant) error {
	query := `
		UPDATE participants
		SET
			full_name = $1,
			school_name = $2,
			group_key = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.FullName, p.SchoolName, p.Group, p.ID, p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteParticipant(id int64) error {
	query := `
		DELETE FROM participants WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CountParticipants() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants`).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
