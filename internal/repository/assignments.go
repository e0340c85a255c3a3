package repository

import (
	"context"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (r *Repository) GetAllAssignments() ([]*domain.Assignment, error) {
	query := `
		SELECT id, participant_id, slot_index, session_id, created_at, version
		FROM assignments
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []*domain.Assignment{}
	for rows.Next() {
		var a domain.Assignment
		dst := []any{&a.ID, &a.ParticipantID, &a.SlotIndex, &a.SessionID, &a.CreatedAt, &a.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	query := `
		SELECT participant_id, slot_index, session_id, created_at, version
		FROM assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	a := &domain.Assignment{
		ID: id,
	}

	dst := []any{&a.ParticipantID, &a.SlotIndex, &a.SessionID, &a.CreatedAt, &a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) CountAssignments() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignments`).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// ReplaceAllAssignments 在一个事务中删除所有旧的分配结果并写入新的分配结果。
// 只持久化已经指向某个场次的槽位，空槽位不入库
func (r *Repository) ReplaceAllAssignments(assignments []*domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments`); err != nil {
		return err
	}

	for _, a := range assignments {
		if a.SessionID == nil {
			continue
		}

		query := `
			INSERT INTO assignments (participant_id, slot_index, session_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, version
		`

		args := []any{a.ParticipantID, a.SlotIndex, a.SessionID}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// OverrideAssignmentSession 直接改写某条分配结果指向的场次，
// 不做任何容量或冲突校验，是一个有意保留的"不安全"操作，
// 改完之后重新评分才能看到可能产生的硬约束违反
func (r *Repository) OverrideAssignmentSession(assignment *domain.Assignment, sessionID int64) error {
	query := `
		UPDATE assignments
		SET session_id = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, sessionID, assignment.ID, assignment.Version).Scan(&assignment.Version); err != nil {
		return err
	}
	assignment.SessionID = &sessionID

	return nil
}

// DeleteAllAssignments 清空所有分配结果，返回删除的数量
func (r *Repository) DeleteAllAssignments() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM assignments`)
	if err != nil {
		return 0, err
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return count, nil
}
