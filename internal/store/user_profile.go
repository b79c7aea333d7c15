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

type userProfileStore struct {
	queries *sqlc.Queries
}

func newUserProfileStore(queries *sqlc.Queries) UserProfileStore {
	return &userProfileStore{queries: queries}
}

func (s *userProfileStore) GetByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	row, err := s.queries.GetUserProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.withMemberships(ctx, row)
}

func (s *userProfileStore) GetByActivationKey(ctx context.Context, key string) (*model.UserProfile, error) {
	row, err := s.queries.GetUserProfileByActivationKey(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.withMemberships(ctx, row)
}

func (s *userProfileStore) Create(ctx context.Context, profile *model.UserProfile) error {
	row, err := s.queries.CreateUserProfile(ctx, sqlc.CreateUserProfileParams{
		ID:            profile.ID,
		UserID:        profile.UserID,
		ActivationKey: profile.ActivationKey,
		KeyExpires:    toTimestamptz(profile.KeyExpires),
	})
	if err != nil {
		return err
	}
	if err := s.replaceMemberships(ctx, row.ID, profile.BarMemberships); err != nil {
		return err
	}
	memberships := profile.BarMemberships
	*profile = *toUserProfileModel(row, memberships)
	return nil
}

func (s *userProfileStore) Update(ctx context.Context, profile *model.UserProfile) error {
	row, err := s.queries.UpdateUserProfile(ctx, sqlc.UpdateUserProfileParams{
		ID:                 profile.ID,
		Location:           profile.Location,
		Employer:           profile.Employer,
		Avatar:             profile.Avatar,
		WantsNewsletter:    profile.WantsNewsletter,
		PlaintextPreferred: profile.PlaintextPreferred,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.queries.DeleteUserProfileBarMemberships(ctx, row.ID); err != nil {
		return err
	}
	if err := s.replaceMemberships(ctx, row.ID, profile.BarMemberships); err != nil {
		return err
	}
	memberships := profile.BarMemberships
	*profile = *toUserProfileModel(row, memberships)
	return nil
}

func (s *userProfileStore) SetActivation(ctx context.Context, id int64, key string, expires time.Time, confirmed bool) error {
	_, err := s.queries.SetUserProfileActivation(ctx, sqlc.SetUserProfileActivationParams{
		ID:             id,
		ActivationKey:  key,
		KeyExpires:     pgtype.Timestamptz{Time: expires, Valid: true},
		EmailConfirmed: confirmed,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *userProfileStore) ConfirmEmail(ctx context.Context, id int64) error {
	_, err := s.queries.ConfirmUserProfileEmail(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *userProfileStore) DeleteByUser(ctx context.Context, userID int64) error {
	n, err := s.queries.DeleteUserProfileByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *userProfileStore) replaceMemberships(ctx context.Context, profileID int64, states []string) error {
	for _, state := range states {
		if err := s.queries.AddUserProfileBarMembership(ctx, sqlc.AddUserProfileBarMembershipParams{
			UserProfileID: profileID,
			State:         state,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *userProfileStore) withMemberships(ctx context.Context, row sqlc.UserProfile) (*model.UserProfile, error) {
	states, err := s.queries.ListUserProfileBarMemberships(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return toUserProfileModel(row, states), nil
}

func toUserProfileModel(row sqlc.UserProfile, states []string) *model.UserProfile {
	p := &model.UserProfile{
		ID:                 row.ID,
		UserID:             row.UserID,
		Location:           row.Location,
		Employer:           row.Employer,
		Avatar:             row.Avatar,
		WantsNewsletter:    row.WantsNewsletter,
		PlaintextPreferred: row.PlaintextPreferred,
		ActivationKey:      row.ActivationKey,
		EmailConfirmed:     row.EmailConfirmed,
		BarMemberships:     states,
	}
	if p.BarMemberships == nil {
		p.BarMemberships = []string{}
	}
	if row.KeyExpires.Valid {
		p.KeyExpires = &row.KeyExpires.Time
	}
	return p
}

func toTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
