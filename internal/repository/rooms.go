package repository

import (
	"context"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (r *Repository) CreateRoom(room *domain.Room) error {
	query := `
		INSERT INTO rooms (name, capacity, building)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{room.Name, room.Capacity, room.Building}
	dst := []any{&room.ID, &room.CreatedAt, &room.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllRooms() ([]*domain.Room, error) {
	query := `
		SELECT id, name, capacity, building, created_at, version
		FROM rooms
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []*domain.Room{}
	for rows.Next() {
		var room domain.Room
		dst := []any{&room.ID, &room.Name, &room.Capacity, &room.Building, &room.CreatedAt, &room.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *Repository) GetRoomByID(id int64) (*domain.Room, error) {
	query := `
		SELECT name, capacity, building, created_at, version
		FROM rooms WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	room := &domain.Room{
		ID: id,
	}

	dst := []any{&room.Name, &room.Capacity, &room.Building, &room.CreatedAt, &room.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return room, nil
}

func (r *Repository) UpdateRoom(room *domain.Room) error {
	query := `
		UPDATE rooms
		SET
			name = $1,
			capacity = $2,
			building = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{room.Name, room.Capacity, room.Building, room.ID, room.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&room.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteRoom(id int64) error {
	query := `
		DELETE FROM rooms WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
