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

type courtStore struct {
	queries *sqlc.Queries
}

func newCourtStore(queries *sqlc.Queries) CourtStore {
	return &courtStore{queries: queries}
}

func (s *courtStore) ListInUse(ctx context.Context) ([]model.Court, error) {
	rows, err := s.queries.ListCourtsInUse(ctx)
	if err != nil {
		return nil, err
	}
	courts := make([]model.Court, len(rows))
	for i, row := range rows {
		courts[i] = *toCourtModel(row)
	}
	return courts, nil
}

func (s *courtStore) GetByID(ctx context.Context, id string) (*model.Court, error) {
	row, err := s.queries.GetCourt(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toCourtModel(row), nil
}

func (s *courtStore) CountOpinionsByYear(ctx context.Context, courtID string) ([]model.YearCount, error) {
	rows, err := s.queries.CountOpinionsByYear(ctx, courtID)
	if err != nil {
		return nil, err
	}
	counts := make([]model.YearCount, len(rows))
	for i, row := range rows {
		counts[i] = model.YearCount{Year: int(row.Year), Count: row.Count}
	}
	return counts, nil
}

func toCourtModel(row sqlc.SearchCourt) *model.Court {
	c := &model.Court{
		ID:                     row.ID,
		FullName:               row.FullName,
		ShortName:              row.ShortName,
		CitationString:         row.CitationString,
		URL:                    row.Url,
		Jurisdiction:           row.Jurisdiction,
		JurisdictionName:       model.Jurisdictions[row.Jurisdiction],
		InUse:                  row.InUse,
		HasOpinionScraper:      row.HasOpinionScraper,
		HasOralArgumentScraper: row.HasOralArgumentScraper,
		Position:               row.Position,
		StartDate:              fromDate(row.StartDate),
		EndDate:                fromDate(row.EndDate),
		DateModified:           row.DateModified.Time,
	}
	return c
}

func fromDate(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
