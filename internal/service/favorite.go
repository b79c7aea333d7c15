package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"courtlistener.app/cl/common/id"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/store"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrClusterNotFound  = errors.New("opinion cluster not found")
)

type FavoriteInput struct {
	ClusterID int64
	Name      string
	Notes     string
}

type FavoriteService interface {
	List(ctx context.Context, userID int64) ([]model.Favorite, error)
	Get(ctx context.Context, userID, favoriteID int64) (*model.Favorite, error)
	Create(ctx context.Context, userID int64, in FavoriteInput) (*model.Favorite, error)
	Update(ctx context.Context, userID, favoriteID int64, name, notes string) (*model.Favorite, error)
	Delete(ctx context.Context, userID, favoriteID int64) error
}

type favoriteService struct {
	favoriteStore store.FavoriteStore
}

func NewFavoriteService(favoriteStore store.FavoriteStore) FavoriteService {
	return &favoriteService{favoriteStore: favoriteStore}
}

func (s *favoriteService) List(ctx context.Context, userID int64) ([]model.Favorite, error) {
	favs, err := s.favoriteStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	return favs, nil
}

func (s *favoriteService) Get(ctx context.Context, userID, favoriteID int64) (*model.Favorite, error) {
	fav, err := s.favoriteStore.GetForUser(ctx, favoriteID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("getting favorite: %w", err)
	}
	return fav, nil
}

func (s *favoriteService) Create(ctx context.Context, userID int64, in FavoriteInput) (*model.Favorite, error) {
	exists, err := s.favoriteStore.ClusterExists(ctx, in.ClusterID)
	if err != nil {
		return nil, fmt.Errorf("checking cluster: %w", err)
	}
	if !exists {
		return nil, ErrClusterNotFound
	}

	fav := &model.Favorite{
		ID:        id.New(),
		UserID:    userID,
		ClusterID: in.ClusterID,
		Name:      sanitizeText(in.Name),
		Notes:     sanitizeText(in.Notes),
	}

	if err := s.favoriteStore.Create(ctx, fav); err != nil {
		slog.ErrorContext(ctx, "failed to create favorite", "error", err, "user_id", userID, "cluster_id", in.ClusterID)
		return nil, fmt.Errorf("creating favorite: %w", err)
	}
	return fav, nil
}

func (s *favoriteService) Update(ctx context.Context, userID, favoriteID int64, name, notes string) (*model.Favorite, error) {
	fav, err := s.Get(ctx, userID, favoriteID)
	if err != nil {
		return nil, err
	}

	fav.Name = sanitizeText(name)
	fav.Notes = sanitizeText(notes)

	if err := s.favoriteStore.Update(ctx, fav); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("updating favorite: %w", err)
	}
	return fav, nil
}

func (s *favoriteService) Delete(ctx context.Context, userID, favoriteID int64) error {
	if err := s.favoriteStore.Delete(ctx, favoriteID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("deleting favorite: %w", err)
	}
	return nil
}
