package sqlc

import (
	"context"
)

const clusterExists = `-- name: ClusterExists :one
SELECT EXISTS (SELECT 1 FROM search_opinioncluster WHERE id = $1)
`

func (q *Queries) ClusterExists(ctx context.Context, id int64) (bool, error) {
	row := q.db.QueryRow(ctx, clusterExists, id)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const createFavorite = `-- name: CreateFavorite :one
INSERT INTO favorites (id, user_id, cluster_id, name, notes)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, cluster_id, name, notes, created_at
`

type CreateFavoriteParams struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ClusterID int64  `json:"cluster_id"`
	Name      string `json:"name"`
	Notes     string `json:"notes"`
}

func (q *Queries) CreateFavorite(ctx context.Context, arg CreateFavoriteParams) (Favorite, error) {
	row := q.db.QueryRow(ctx, createFavorite,
		arg.ID,
		arg.UserID,
		arg.ClusterID,
		arg.Name,
		arg.Notes,
	)
	var i Favorite
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ClusterID,
		&i.Name,
		&i.Notes,
		&i.CreatedAt,
	)
	return i, err
}

const deleteFavoriteForUser = `-- name: DeleteFavoriteForUser :execrows
DELETE FROM favorites WHERE id = $1 AND user_id = $2
`

type DeleteFavoriteForUserParams struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}

func (q *Queries) DeleteFavoriteForUser(ctx context.Context, arg DeleteFavoriteForUserParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteFavoriteForUser, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteFavoritesByUser = `-- name: DeleteFavoritesByUser :exec
DELETE FROM favorites WHERE user_id = $1
`

func (q *Queries) DeleteFavoritesByUser(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, deleteFavoritesByUser, userID)
	return err
}

const getFavoriteForUser = `-- name: GetFavoriteForUser :one
SELECT id, user_id, cluster_id, name, notes, created_at FROM favorites WHERE id = $1 AND user_id = $2
`

type GetFavoriteForUserParams struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}

func (q *Queries) GetFavoriteForUser(ctx context.Context, arg GetFavoriteForUserParams) (Favorite, error) {
	row := q.db.QueryRow(ctx, getFavoriteForUser, arg.ID, arg.UserID)
	var i Favorite
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ClusterID,
		&i.Name,
		&i.Notes,
		&i.CreatedAt,
	)
	return i, err
}

const listFavoritesByUser = `-- name: ListFavoritesByUser :many
SELECT id, user_id, cluster_id, name, notes, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListFavoritesByUser(ctx context.Context, userID int64) ([]Favorite, error) {
	rows, err := q.db.Query(ctx, listFavoritesByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Favorite{}
	for rows.Next() {
		var i Favorite
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.ClusterID,
			&i.Name,
			&i.Notes,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateFavorite = `-- name: UpdateFavorite :one
UPDATE favorites SET name = $3, notes = $4
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, cluster_id, name, notes, created_at
`

type UpdateFavoriteParams struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Notes  string `json:"notes"`
}

func (q *Queries) UpdateFavorite(ctx context.Context, arg UpdateFavoriteParams) (Favorite, error) {
	row := q.db.QueryRow(ctx, updateFavorite,
		arg.ID,
		arg.UserID,
		arg.Name,
		arg.Notes,
	)
	var i Favorite
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ClusterID,
		&i.Name,
		&i.Notes,
		&i.CreatedAt,
	)
	return i, err
}
