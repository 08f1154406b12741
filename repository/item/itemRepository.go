package itemrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shareit/model"
)

// Repo is the item store. Lookups return (nil, nil) when the row is absent.
type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Item, error)
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Item, error)
	Search(ctx context.Context, text string, offset, limit int) ([]model.Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const itemColumns = `id, name, description, available, owner_id, request_id`

func scanItem(row interface{ Scan(...any) error }, it *model.Item) error {
	return row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
}

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `
		UPDATE items
		SET name = $2, description = $3, available = $4
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it := &model.Item{}
	err := scanItem(r.db.QueryRowContext(ctx, q, id), it)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ByIDForUpdate locks the item row for the duration of the transaction so
// concurrent booking attempts on the same item serialize.
func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	it := &model.Item{}
	err := scanItem(tx.QueryRowContext(ctx, q, id), it)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Item, error) {
	q := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`
	return r.queryItems(ctx, q, ownerID, offset, limit)
}

func (r *repo) Search(ctx context.Context, text string, offset, limit int) ([]model.Item, error) {
	q := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE available = TRUE
		  AND (lower(name) LIKE $1 OR lower(description) LIKE $1)
		ORDER BY id
		OFFSET $2 LIMIT $3`
	pattern := "%" + strings.ToLower(strings.TrimSpace(text)) + "%"
	return r.queryItems(ctx, q, pattern, offset, limit)
}

func (r *repo) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(requestIDs))
	args := make([]any, len(requestIDs))
	for i, id := range requestIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	q := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE request_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY id`
	return r.queryItems(ctx, q, args...)
}

func (r *repo) queryItems(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
