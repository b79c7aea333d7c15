package dto

import (
	"time"

	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/service"
)

type FavoriteRequest struct {
	ClusterID int64  `json:"cluster_id,string" binding:"required"`
	Name      string `json:"name" binding:"required,max=100"`
	Notes     string `json:"notes" binding:"max=500"`
}

func (r FavoriteRequest) ToInput() service.FavoriteInput {
	return service.FavoriteInput{
		ClusterID: r.ClusterID,
		Name:      r.Name,
		Notes:     r.Notes,
	}
}

type UpdateFavoriteRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Notes string `json:"notes" binding:"max=500"`
}

type FavoriteResponse struct {
	ID        int64     `json:"id,string"`
	ClusterID int64     `json:"cluster_id,string"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func ToFavoriteResponse(f *model.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        f.ID,
		ClusterID: f.ClusterID,
		Name:      f.Name,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
	}
}

func ToFavoriteResponses(favorites []model.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, ToFavoriteResponse(&favorites[i]))
	}
	return out
}
