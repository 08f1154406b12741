package requestrepo

import (
	"context"
	"database/sql"
	"errors"

	"shareit/model"
)

// Repo is the item-request store. ByID returns (nil, nil) when the row is
// absent.
type Repo interface {
	Insert(ctx context.Context, rq *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.Request, error)
	ListOthers(ctx context.Context, viewerID int64, offset, limit int) ([]model.Request, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, rq *model.Request) error {
	const q = `
		INSERT INTO requests (description, requester_id, created)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q, rq.Description, rq.RequesterID, rq.Created).Scan(&rq.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Request, error) {
	const q = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE id = $1`
	rq := &model.Request{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rq.ID, &rq.Description, &rq.RequesterID, &rq.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rq, nil
}

func (r *repo) ListByRequester(ctx context.Context, requesterID int64) ([]model.Request, error) {
	const q = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id = $1
		ORDER BY created DESC`
	return r.queryRequests(ctx, q, requesterID)
}

func (r *repo) ListOthers(ctx context.Context, viewerID int64, offset, limit int) ([]model.Request, error) {
	const q = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id <> $1
		ORDER BY created DESC
		OFFSET $2 LIMIT $3`
	return r.queryRequests(ctx, q, viewerID, offset, limit)
}

func (r *repo) queryRequests(ctx context.Context, q string, args ...any) ([]model.Request, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Request
	for rows.Next() {
		var rq model.Request
		if err := rows.Scan(&rq.ID, &rq.Description, &rq.RequesterID, &rq.Created); err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	return out, rows.Err()
}
