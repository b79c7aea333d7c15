package sqlc

import (
	"context"
)

const countOpinionsByYear = `-- name: CountOpinionsByYear :many
SELECT EXTRACT(YEAR FROM oc.date_filed)::int AS year, count(*)::bigint AS count
FROM search_opinion o
JOIN search_opinioncluster oc ON o.cluster_id = oc.id
JOIN search_docket d ON oc.docket_id = d.id
WHERE $1::text = 'all' OR d.court_id = $1::text
GROUP BY year
ORDER BY year
`

type CountOpinionsByYearRow struct {
	Year  int32 `json:"year"`
	Count int64 `json:"count"`
}

func (q *Queries) CountOpinionsByYear(ctx context.Context, courtID string) ([]CountOpinionsByYearRow, error) {
	rows, err := q.db.Query(ctx, countOpinionsByYear, courtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CountOpinionsByYearRow{}
	for rows.Next() {
		var i CountOpinionsByYearRow
		if err := rows.Scan(&i.Year, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCourt = `-- name: GetCourt :one
SELECT id, date_modified, in_use, has_opinion_scraper, has_oral_argument_scraper, position, citation_string, short_name, full_name, url, start_date, end_date, jurisdiction, notes FROM search_court WHERE id = $1
`

func (q *Queries) GetCourt(ctx context.Context, id string) (SearchCourt, error) {
	row := q.db.QueryRow(ctx, getCourt, id)
	var i SearchCourt
	err := row.Scan(
		&i.ID,
		&i.DateModified,
		&i.InUse,
		&i.HasOpinionScraper,
		&i.HasOralArgumentScraper,
		&i.Position,
		&i.CitationString,
		&i.ShortName,
		&i.FullName,
		&i.Url,
		&i.StartDate,
		&i.EndDate,
		&i.Jurisdiction,
		&i.Notes,
	)
	return i, err
}

const listCourtsInUse = `-- name: ListCourtsInUse :many
SELECT id, date_modified, in_use, has_opinion_scraper, has_oral_argument_scraper, position, citation_string, short_name, full_name, url, start_date, end_date, jurisdiction, notes FROM search_court WHERE in_use ORDER BY position
`

func (q *Queries) ListCourtsInUse(ctx context.Context) ([]SearchCourt, error) {
	rows, err := q.db.Query(ctx, listCourtsInUse)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SearchCourt{}
	for rows.Next() {
		var i SearchCourt
		if err := rows.Scan(
			&i.ID,
			&i.DateModified,
			&i.InUse,
			&i.HasOpinionScraper,
			&i.HasOralArgumentScraper,
			&i.Position,
			&i.CitationString,
			&i.ShortName,
			&i.FullName,
			&i.Url,
			&i.StartDate,
			&i.EndDate,
			&i.Jurisdiction,
			&i.Notes,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
