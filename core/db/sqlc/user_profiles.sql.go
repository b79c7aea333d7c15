package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const addUserProfileBarMembership = `-- name: AddUserProfileBarMembership :exec
INSERT INTO user_profile_bar_memberships (user_profile_id, state)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

type AddUserProfileBarMembershipParams struct {
	UserProfileID int64  `json:"user_profile_id"`
	State         string `json:"state"`
}

func (q *Queries) AddUserProfileBarMembership(ctx context.Context, arg AddUserProfileBarMembershipParams) error {
	_, err := q.db.Exec(ctx, addUserProfileBarMembership, arg.UserProfileID, arg.State)
	return err
}

const confirmUserProfileEmail = `-- name: ConfirmUserProfileEmail :one
UPDATE user_profiles SET email_confirmed = TRUE WHERE id = $1 RETURNING id, user_id, location, employer, avatar, wants_newsletter, plaintext_preferred, activation_key, key_expires, email_confirmed
`

func (q *Queries) ConfirmUserProfileEmail(ctx context.Context, id int64) (UserProfile, error) {
	row := q.db.QueryRow(ctx, confirmUserProfileEmail, id)
	var i UserProfile
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Location,
		&i.Employer,
		&i.Avatar,
		&i.WantsNewsletter,
		&i.PlaintextPreferred,
		&i.ActivationKey,
		&i.KeyExpires,
		&i.EmailConfirmed,
	)
	return i, err
}

const createUserProfile = `-- name: CreateUserProfile :one
INSERT INTO user_profiles (id, user_id, activation_key, key_expires)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, location, employer, avatar, wants_newsletter, plaintext_preferred, activation_key, key_expires, email_confirmed
`

type CreateUserProfileParams struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"user_id"`
	ActivationKey string             `json:"activation_key"`
	KeyExpires    pgtype.Timestamptz `json:"key_expires"`
}

func (q *Queries) CreateUserProfile(ctx context.Context, arg CreateUserProfileParams) (UserProfile, error) {
	row := q.db.QueryRow(ctx, createUserProfile,
		arg.ID,
		arg.UserID,
		arg.ActivationKey,
		arg.KeyExpires,
	)
	var i UserProfile
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Location,
		&i.Employer,
		&i.Avatar,
		&i.WantsNewsletter,
		&i.PlaintextPreferred,
		&i.ActivationKey,
		&i.KeyExpires,
		&i.EmailConfirmed,
	)
	return i, err
}

const deleteUserProfileBarMemberships = `-- name: DeleteUserProfileBarMemberships :exec
DELETE FROM user_profile_bar_memberships WHERE user_profile_id = $1
`

func (q *Queries) DeleteUserProfileBarMemberships(ctx context.Context, userProfileID int64) error {
	_, err := q.db.Exec(ctx, deleteUserProfileBarMemberships, userProfileID)
	return err
}

const deleteUserProfileByUserID = `-- name: DeleteUserProfileByUserID :execrows
DELETE FROM user_profiles WHERE user_id = $1
`

func (q *Queries) DeleteUserProfileByUserID(ctx context.Context, userID int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteUserProfileByUserID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getUserProfileByActivationKey = `-- name: GetUserProfileByActivationKey :one
SELECT id, user_id, location, employer, avatar, wants_newsletter, plaintext_preferred, activation_key, key_expires, email_confirmed FROM user_profiles WHERE activation_key = $1
`

func (q *Queries) GetUserProfileByActivationKey(ctx context.Context, activationKey string) (UserProfile, error) {
	row := q.db.QueryRow(ctx, getUserProfileByActivationKey, activationKey)
	var i UserProfile
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Location,
		&i.Employer,
		&i.Avatar,
		&i.WantsNewsletter,
		&i.PlaintextPreferred,
		&i.ActivationKey,
		&i.KeyExpires,
		&i.EmailConfirmed,
	)
	return i, err
}

const getUserProfileByUserID = `-- name: GetUserProfileByUserID :one
SELECT id, user_id, location, employer, avatar, wants_newsletter, plaintext_preferred, activation_key, key_expires, email_confirmed FROM user_profiles WHERE user_id = $1
`

func (q *Queries) GetUserProfileByUserID(ctx context.Context, userID int64) (UserProfile, error) {
	row := q.db.QueryRow(ctx, getUserProfileByUserID, userID)
	var i UserProfile
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Location,
		&i.Employer,
		&i.Avatar,
		&i.WantsNewsletter,
		&i.PlaintextPreferred,
		&i.ActivationKey,
		&i.KeyExpires,
		&i.EmailConfirmed,
	)
	return i, err
}

const listUserProfileBarMemberships = `-- name: ListUserProfileBarMemberships :many
SELECT state FROM user_profile_bar_memberships
WHERE user_profile_id = $1
ORDER BY state
`

func (q *Queries) ListUserProfileBarMemberships(ctx context.Context, userProfileID int64) ([]string, error) {
	rows, err := q.db.Query(ctx, listUserProfileBarMemberships, userProfileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, err
		}
		items = append(items, state)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setUserProfileActivation = `-- name: SetUserProfileActivation :one
UPDATE user_profiles
SET activation_key = $2, key_expires = $3, email_confirmed = $4
WHERE id = $1
RETURNING id, user_id, location, employer, avatar, wants_newsletter, plaintext_preferred, activation_key, key_expires, email_confirmed
`

type SetUserProfileActivationParams struct {
	ID             int64              `json:"id"`
	ActivationKey  string             `json:"activation_key"`
	KeyExpires     pgtype.Timestamptz `json:"key_expires"`
	EmailConfirmed bool               `json:"email_confirmed"`
}

func (q *Queries) SetUserProfileActivation(ctx context.Context, arg SetUserProfileActivationParams) (UserProfile, error) {
	row := q.db.QueryRow(ctx, setUserProfileActivation,
		arg.ID,
		arg.ActivationKey,
		arg.KeyExpires,
		arg.EmailConfirmed,
	)
	var i UserProfile
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Location,
		&i.Employer,
		&i.Avatar,
		&i.WantsNewsletter,
		&i.PlaintextPreferred,
		&i.ActivationKey,
		&i.KeyExpires,
		&i.EmailConfirmed,
	)
	return i, err
}

const updateUserProfile = `-- name: UpdateUserProfile :one
UPDATE user_profiles
SET location = $2, employer = $3, avatar = $4, wants_newsletter = $5, plaintext_preferred = $6
WHERE id = $1
RETURNING id, user_id, location, employer, avatar, wants_newsletter, plaintext_preferred, activation_key, key_expires, email_confirmed
`

type UpdateUserProfileParams struct {
	ID                 int64  `json:"id"`
	Location           string `json:"location"`
	Employer           string `json:"employer"`
	Avatar             string `json:"avatar"`
	WantsNewsletter    bool   `json:"wants_newsletter"`
	PlaintextPreferred bool   `json:"plaintext_preferred"`
}

func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (UserProfile, error) {
	row := q.db.QueryRow(ctx, updateUserProfile,
		arg.ID,
		arg.Location,
		arg.Employer,
		arg.Avatar,
		arg.WantsNewsletter,
		arg.PlaintextPreferred,
	)
	var i UserProfile
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Location,
		&i.Employer,
		&i.Avatar,
		&i.WantsNewsletter,
		&i.PlaintextPreferred,
		&i.ActivationKey,
		&i.KeyExpires,
		&i.EmailConfirmed,
	)
	return i, err
}
