package store

import (
	"context"
	"errors"
	"time"

	"courtlistener.app/cl/core/db/sqlc"
	"courtlistener.app/cl/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type alertStore struct {
	queries *sqlc.Queries
}

func newAlertStore(queries *sqlc.Queries) AlertStore {
	return &alertStore{queries: queries}
}

func (s *alertStore) GetByID(ctx context.Context, id int64) (*model.Alert, error) {
	row, err := s.queries.GetAlert(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toAlertModel(row), nil
}

func (s *alertStore) GetForUser(ctx context.Context, id, userID int64) (*model.Alert, error) {
	row, err := s.queries.GetAlertForUser(ctx, sqlc.GetAlertForUserParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toAlertModel(row), nil
}

func (s *alertStore) ListByUser(ctx context.Context, userID int64) ([]model.Alert, error) {
	rows, err := s.queries.ListAlertsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	alerts := make([]model.Alert, len(rows))
	for i, row := range rows {
		alerts[i] = *toAlertModel(row)
	}
	return alerts, nil
}

func (s *alertStore) ListIDsByFrequency(ctx context.Context, frequency model.AlertFrequency) ([]int64, error) {
	return s.queries.ListAlertIDsByFrequency(ctx, string(frequency))
}

func (s *alertStore) Create(ctx context.Context, alert *model.Alert) error {
	row, err := s.queries.CreateAlert(ctx, sqlc.CreateAlertParams{
		ID:                alert.ID,
		UserID:            alert.UserID,
		Name:              alert.Name,
		Query:             alert.Query,
		Frequency:         string(alert.Frequency),
		Private:           alert.Private,
		SendNegativeAlert: alert.SendNegativeAlert,
	})
	if err != nil {
		return err
	}
	*alert = *toAlertModel(row)
	return nil
}

func (s *alertStore) Update(ctx context.Context, alert *model.Alert) error {
	row, err := s.queries.UpdateAlert(ctx, sqlc.UpdateAlertParams{
		ID:                alert.ID,
		UserID:            alert.UserID,
		Name:              alert.Name,
		Query:             alert.Query,
		Frequency:         string(alert.Frequency),
		Private:           alert.Private,
		SendNegativeAlert: alert.SendNegativeAlert,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*alert = *toAlertModel(row)
	return nil
}

func (s *alertStore) Delete(ctx context.Context, id, userID int64) error {
	n, err := s.queries.DeleteAlertForUser(ctx, sqlc.DeleteAlertForUserParams{ID: id, UserID: userID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *alertStore) DeleteByUser(ctx context.Context, userID int64) error {
	return s.queries.DeleteAlertsByUser(ctx, userID)
}

func (s *alertStore) SetLastHitDate(ctx context.Context, id int64, at time.Time) error {
	return s.queries.SetAlertLastHitDate(ctx, sqlc.SetAlertLastHitDateParams{
		ID:          id,
		LastHitDate: pgtype.Timestamptz{Time: at, Valid: true},
	})
}

func toAlertModel(row sqlc.Alert) *model.Alert {
	a := &model.Alert{
		ID:                row.ID,
		UserID:            row.UserID,
		Name:              row.Name,
		Query:             row.Query,
		Frequency:         model.AlertFrequency(row.Frequency),
		Private:           row.Private,
		SendNegativeAlert: row.SendNegativeAlert,
		CreatedAt:         row.CreatedAt.Time,
	}
	if row.LastHitDate.Valid {
		a.LastHitDate = &row.LastHitDate.Time
	}
	return a
}
