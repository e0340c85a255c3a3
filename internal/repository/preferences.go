package repository

import (
	"context"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (r *Repository) GetAllPreferences() ([]*domain.Preference, error) {
	query := `
		SELECT id, participant_id, activity_id, rank
		FROM preferences
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	preferences := []*domain.Preference{}
	for rows.Next() {
		var p domain.Preference
		dst := []any{&p.ID, &p.ParticipantID, &p.ActivityID, &p.Rank}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		preferences = append(preferences, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return preferences, nil
}

func (r *Repository) GetPreferencesByParticipantID(participantID int64) ([]*domain.Preference, error) {
	query := `
		SELECT id, activity_id, rank
		FROM preferences
		WHERE participant_id = $1
		ORDER BY rank
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	preferences := []*domain.Preference{}
	for rows.Next() {
		p := domain.Preference{
			ParticipantID: participantID,
		}
		if err := rows.Scan(&p.ID, &p.ActivityID, &p.Rank); err != nil {
			return nil, err
		}
		preferences = append(preferences, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return preferences, nil
}

// ReplaceParticipantPreferences 在一个事务中替换某个参与者的全部志愿，
// 并把参与者标记为已提交
func (r *Repository) ReplaceParticipantPreferences(participant *domain.Participant, preferences []*domain.Preference) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM preferences WHERE participant_id = $1`
	if _, err := tx.ExecContext(ctx, query, participant.ID); err != nil {
		return err
	}

	for _, p := range preferences {
		query := `
			INSERT INTO preferences (participant_id, activity_id, rank)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		if err := tx.QueryRowContext(ctx, query, participant.ID, p.ActivityID, p.Rank).Scan(&p.ID); err != nil {
			return err
		}
		p.ParticipantID = participant.ID
	}

	query = `
		UPDATE participants
		SET prefs_submitted = TRUE, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, participant.ID, participant.Version).Scan(&participant.Version); err != nil {
		return err
	}
	participant.PrefsSubmitted = true

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
