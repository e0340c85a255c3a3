package repository

import (
	"context"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (r *Repository) GetAllSessions() ([]*domain.Session, error) {
	query := `
		SELECT id, activity_id, room_id, timeslot_id, capacity, created_at, version
		FROM sessions
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*domain.Session{}
	for rows.Next() {
		var s domain.Session
		dst := []any{&s.ID, &s.ActivityID, &s.RoomID, &s.TimeslotID, &s.Capacity, &s.CreatedAt, &s.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *Repository) CountSessions() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// ReplaceAllSessions 在一个事务中删除所有旧场次并写入新生成的场次，
// 返回被删除的旧场次数量。关联的分配结果会被级联删除
func (r *Repository) ReplaceAllSessions(sessions []*domain.Session) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var removed int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&removed); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return 0, err
	}

	for _, s := range sessions {
		query := `
			INSERT INTO sessions (activity_id, room_id, timeslot_id, capacity)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, version
		`

		args := []any{s.ActivityID, s.RoomID, s.TimeslotID, s.Capacity}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return removed, nil
}
