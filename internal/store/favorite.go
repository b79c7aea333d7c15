package store

import (
	"context"
	"errors"

	"courtlistener.app/cl/core/db/sqlc"
	"courtlistener.app/cl/internal/model"
	"github.com/jackc/pgx/v5"
)

type favoriteStore struct {
	queries *sqlc.Queries
}

func newFavoriteStore(queries *sqlc.Queries) FavoriteStore {
	return &favoriteStore{queries: queries}
}

func (s *favoriteStore) GetForUser(ctx context.Context, id, userID int64) (*model.Favorite, error) {
	row, err := s.queries.GetFavoriteForUser(ctx, sqlc.GetFavoriteForUserParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toFavoriteModel(row), nil
}

func (s *favoriteStore) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	rows, err := s.queries.ListFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	favs := make([]model.Favorite, len(rows))
	for i, row := range rows {
		favs[i] = *toFavoriteModel(row)
	}
	return favs, nil
}

func (s *favoriteStore) Create(ctx context.Context, fav *model.Favorite) error {
	row, err := s.queries.CreateFavorite(ctx, sqlc.CreateFavoriteParams{
		ID:        fav.ID,
		UserID:    fav.UserID,
		ClusterID: fav.ClusterID,
		Name:      fav.Name,
		Notes:     fav.Notes,
	})
	if err != nil {
		return err
	}
	*fav = *toFavoriteModel(row)
	return nil
}

func (s *favoriteStore) Update(ctx context.Context, fav *model.Favorite) error {
	row, err := s.queries.UpdateFavorite(ctx, sqlc.UpdateFavoriteParams{
		ID:     fav.ID,
		UserID: fav.UserID,
		Name:   fav.Name,
		Notes:  fav.Notes,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*fav = *toFavoriteModel(row)
	return nil
}

func (s *favoriteStore) Delete(ctx context.Context, id, userID int64) error {
	n, err := s.queries.DeleteFavoriteForUser(ctx, sqlc.DeleteFavoriteForUserParams{ID: id, UserID: userID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *favoriteStore) DeleteByUser(ctx context.Context, userID int64) error {
	return s.queries.DeleteFavoritesByUser(ctx, userID)
}

func (s *favoriteStore) ClusterExists(ctx context.Context, clusterID int64) (bool, error) {
	return s.queries.ClusterExists(ctx, clusterID)
}

func toFavoriteModel(row sqlc.Favorite) *model.Favorite {
	return &model.Favorite{
		ID:        row.ID,
		UserID:    row.UserID,
		ClusterID: row.ClusterID,
		Name:      row.Name,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt.Time,
	}
}
