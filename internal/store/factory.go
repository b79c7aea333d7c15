package store

import (
	"courtlistener.app/cl/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) UserProfiles() UserProfileStore {
	return newUserProfileStore(s.queries)
}

func (s *Stores) Alerts() AlertStore {
	return newAlertStore(s.queries)
}

func (s *Stores) Favorites() FavoriteStore {
	return newFavoriteStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Courts() CourtStore {
	return newCourtStore(s.queries)
}
