package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"courtlistener.app/cl/common/id"
	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/store"
)

var (
	ErrAlertNotFound    = errors.New("alert not found")
	ErrInvalidFrequency = errors.New("invalid alert frequency")
	ErrEmptyQuery       = errors.New("alert query is empty")
)

type AlertInput struct {
	Name              string
	Query             string
	Frequency         model.AlertFrequency
	Private           bool
	SendNegativeAlert bool
}

type AlertService interface {
	List(ctx context.Context, userID int64) ([]model.Alert, error)
	Get(ctx context.Context, userID, alertID int64) (*model.Alert, error)
	Create(ctx context.Context, userID int64, in AlertInput) (*model.Alert, error)
	Update(ctx context.Context, userID, alertID int64, in AlertInput) (*model.Alert, error)
	Delete(ctx context.Context, userID, alertID int64) error
}

type alertService struct {
	alertStore store.AlertStore
}

func NewAlertService(alertStore store.AlertStore) AlertService {
	return &alertService{alertStore: alertStore}
}

func (s *alertService) List(ctx context.Context, userID int64) ([]model.Alert, error) {
	alerts, err := s.alertStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	return alerts, nil
}

func (s *alertService) Get(ctx context.Context, userID, alertID int64) (*model.Alert, error) {
	alert, err := s.alertStore.GetForUser(ctx, alertID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("getting alert: %w", err)
	}
	return alert, nil
}

func (s *alertService) Create(ctx context.Context, userID int64, in AlertInput) (*model.Alert, error) {
	in, err := cleanAlertInput(in)
	if err != nil {
		return nil, err
	}

	alert := &model.Alert{
		ID:                id.New(),
		UserID:            userID,
		Name:              in.Name,
		Query:             in.Query,
		Frequency:         in.Frequency,
		Private:           in.Private,
		SendNegativeAlert: in.SendNegativeAlert,
	}

	if err := s.alertStore.Create(ctx, alert); err != nil {
		slog.ErrorContext(ctx, "failed to create alert", "error", err, "user_id", userID)
		return nil, fmt.Errorf("creating alert: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{AlertID: logger.Ptr(alert.ID)})
	slog.InfoContext(ctx, "alert created", "frequency", alert.Frequency)
	return alert, nil
}

func (s *alertService) Update(ctx context.Context, userID, alertID int64, in AlertInput) (*model.Alert, error) {
	alert, err := s.Get(ctx, userID, alertID)
	if err != nil {
		return nil, err
	}

	in, err = cleanAlertInput(in)
	if err != nil {
		return nil, err
	}

	alert.Name = in.Name
	alert.Query = in.Query
	alert.Frequency = in.Frequency
	alert.Private = in.Private
	alert.SendNegativeAlert = in.SendNegativeAlert

	if err := s.alertStore.Update(ctx, alert); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("updating alert: %w", err)
	}
	return alert, nil
}

func (s *alertService) Delete(ctx context.Context, userID, alertID int64) error {
	if err := s.alertStore.Delete(ctx, alertID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAlertNotFound
		}
		return fmt.Errorf("deleting alert: %w", err)
	}
	slog.InfoContext(ctx, "alert deleted", "alert_id", alertID, "user_id", userID)
	return nil
}

func cleanAlertInput(in AlertInput) (AlertInput, error) {
	if !in.Frequency.Valid() {
		return in, ErrInvalidFrequency
	}
	in.Name = sanitizeText(in.Name)
	in.Query = sanitizeText(in.Query)
	if in.Query == "" {
		return in, ErrEmptyQuery
	}
	return in, nil
}
