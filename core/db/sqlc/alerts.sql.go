package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createAlert = `-- name: CreateAlert :one
INSERT INTO alerts (id, user_id, name, query, frequency, private, send_negative_alert)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, name, query, frequency, private, send_negative_alert, last_hit_date, created_at
`

type CreateAlertParams struct {
	ID                int64  `json:"id"`
	UserID            int64  `json:"user_id"`
	Name              string `json:"name"`
	Query             string `json:"query"`
	Frequency         string `json:"frequency"`
	Private           bool   `json:"private"`
	SendNegativeAlert bool   `json:"send_negative_alert"`
}

func (q *Queries) CreateAlert(ctx context.Context, arg CreateAlertParams) (Alert, error) {
	row := q.db.QueryRow(ctx, createAlert,
		arg.ID,
		arg.UserID,
		arg.Name,
		arg.Query,
		arg.Frequency,
		arg.Private,
		arg.SendNegativeAlert,
	)
	var i Alert
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Name,
		&i.Query,
		&i.Frequency,
		&i.Private,
		&i.SendNegativeAlert,
		&i.LastHitDate,
		&i.CreatedAt,
	)
	return i, err
}

const deleteAlertForUser = `-- name: DeleteAlertForUser :execrows
DELETE FROM alerts WHERE id = $1 AND user_id = $2
`

type DeleteAlertForUserParams struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}

func (q *Queries) DeleteAlertForUser(ctx context.Context, arg DeleteAlertForUserParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteAlertForUser, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteAlertsByUser = `-- name: DeleteAlertsByUser :exec
DELETE FROM alerts WHERE user_id = $1
`

func (q *Queries) DeleteAlertsByUser(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, deleteAlertsByUser, userID)
	return err
}

const getAlert = `-- name: GetAlert :one
SELECT id, user_id, name, query, frequency, private, send_negative_alert, last_hit_date, created_at FROM alerts WHERE id = $1
`

func (q *Queries) GetAlert(ctx context.Context, id int64) (Alert, error) {
	row := q.db.QueryRow(ctx, getAlert, id)
	var i Alert
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Name,
		&i.Query,
		&i.Frequency,
		&i.Private,
		&i.SendNegativeAlert,
		&i.LastHitDate,
		&i.CreatedAt,
	)
	return i, err
}

const getAlertForUser = `-- name: GetAlertForUser :one
SELECT id, user_id, name, query, frequency, private, send_negative_alert, last_hit_date, created_at FROM alerts WHERE id = $1 AND user_id = $2
`

type GetAlertForUserParams struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}

func (q *Queries) GetAlertForUser(ctx context.Context, arg GetAlertForUserParams) (Alert, error) {
	row := q.db.QueryRow(ctx, getAlertForUser, arg.ID, arg.UserID)
	var i Alert
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Name,
		&i.Query,
		&i.Frequency,
		&i.Private,
		&i.SendNegativeAlert,
		&i.LastHitDate,
		&i.CreatedAt,
	)
	return i, err
}

const listAlertIDsByFrequency = `-- name: ListAlertIDsByFrequency :many
SELECT a.id FROM alerts a
JOIN user_profiles p ON p.user_id = a.user_id
WHERE a.frequency = $1 AND p.email_confirmed
ORDER BY a.id
`

func (q *Queries) ListAlertIDsByFrequency(ctx context.Context, frequency string) ([]int64, error) {
	rows, err := q.db.Query(ctx, listAlertIDsByFrequency, frequency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAlertsByUser = `-- name: ListAlertsByUser :many
SELECT id, user_id, name, query, frequency, private, send_negative_alert, last_hit_date, created_at FROM alerts WHERE user_id = $1 ORDER BY frequency, query
`

func (q *Queries) ListAlertsByUser(ctx context.Context, userID int64) ([]Alert, error) {
	rows, err := q.db.Query(ctx, listAlertsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Alert{}
	for rows.Next() {
		var i Alert
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Name,
			&i.Query,
			&i.Frequency,
			&i.Private,
			&i.SendNegativeAlert,
			&i.LastHitDate,
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

const setAlertLastHitDate = `-- name: SetAlertLastHitDate :exec
UPDATE alerts SET last_hit_date = $2 WHERE id = $1
`

type SetAlertLastHitDateParams struct {
	ID          int64              `json:"id"`
	LastHitDate pgtype.Timestamptz `json:"last_hit_date"`
}

func (q *Queries) SetAlertLastHitDate(ctx context.Context, arg SetAlertLastHitDateParams) error {
	_, err := q.db.Exec(ctx, setAlertLastHitDate, arg.ID, arg.LastHitDate)
	return err
}

const updateAlert = `-- name: UpdateAlert :one
UPDATE alerts
SET name = $3, query = $4, frequency = $5, private = $6, send_negative_alert = $7
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, name, query, frequency, private, send_negative_alert, last_hit_date, created_at
`

type UpdateAlertParams struct {
	ID                int64  `json:"id"`
	UserID            int64  `json:"user_id"`
	Name              string `json:"name"`
	Query             string `json:"query"`
	Frequency         string `json:"frequency"`
	Private           bool   `json:"private"`
	SendNegativeAlert bool   `json:"send_negative_alert"`
}

func (q *Queries) UpdateAlert(ctx context.Context, arg UpdateAlertParams) (Alert, error) {
	row := q.db.QueryRow(ctx, updateAlert,
		arg.ID,
		arg.UserID,
		arg.Name,
		arg.Query,
		arg.Frequency,
		arg.Private,
		arg.SendNegativeAlert,
	)
	var i Alert
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Name,
		&i.Query,
		&i.Frequency,
		&i.Private,
		&i.SendNegativeAlert,
		&i.LastHitDate,
		&i.CreatedAt,
	)
	return i, err
}
