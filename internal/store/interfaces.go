package store

import (
	"context"
	"errors"
	"time"

	"courtlistener.app/cl/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error) // case-insensitive
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// UserProfileStore defines the contract for user profile data access.
// Profiles are loaded together with their bar memberships.
type UserProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*model.UserProfile, error)
	GetByActivationKey(ctx context.Context, key string) (*model.UserProfile, error)
	Create(ctx context.Context, profile *model.UserProfile) error
	Update(ctx context.Context, profile *model.UserProfile) error // replaces bar memberships
	SetActivation(ctx context.Context, id int64, key string, expires time.Time, confirmed bool) error
	ConfirmEmail(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// AlertStore defines the contract for alert data access.
// Owner-scoped methods return ErrNotFound for another user's alert.
type AlertStore interface {
	GetByID(ctx context.Context, id int64) (*model.Alert, error)
	GetForUser(ctx context.Context, id, userID int64) (*model.Alert, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Alert, error) // ordered by frequency, query
	ListIDsByFrequency(ctx context.Context, frequency model.AlertFrequency) ([]int64, error)
	Create(ctx context.Context, alert *model.Alert) error
	Update(ctx context.Context, alert *model.Alert) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	SetLastHitDate(ctx context.Context, id int64, at time.Time) error
}

// FavoriteStore defines the contract for favorite data access
type FavoriteStore interface {
	GetForUser(ctx context.Context, id, userID int64) (*model.Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error)
	Create(ctx context.Context, fav *model.Favorite) error
	Update(ctx context.Context, fav *model.Favorite) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	ClusterExists(ctx context.Context, clusterID int64) (bool, error)
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	GetValidByToken(ctx context.Context, token string) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// CourtStore defines the contract for court lookups used outside the REST resources
type CourtStore interface {
	ListInUse(ctx context.Context) ([]model.Court, error)
	GetByID(ctx context.Context, id string) (*model.Court, error)
	CountOpinionsByYear(ctx context.Context, courtID string) ([]model.YearCount, error) // courtID "all" counts every court
}

// RecordStore reads legal records for the REST API. Table and column names
// come from resource declarations, never from the request.
type RecordStore interface {
	List(ctx context.Context, q RecordQuery) ([]Record, error)
	Count(ctx context.Context, q RecordQuery) (int64, error)
	Get(ctx context.Context, table string, id any) (Record, error)
	ListIn(ctx context.Context, table, column string, keys []any) ([]Record, error)
	Pairs(ctx context.Context, table, keyColumn, valueColumn string, keys []any) (map[any][]any, error)
}
