package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo is a Postgres-backed Repo.
type PGRepo struct {
	db *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{db: db}
}

const documentColumns = `id, user_id, file_name, mime_type, size_bytes, storage_key, url, uploaded_at`

func (r *PGRepo) Upsert(ctx context.Context, d Document) (Document, error) {
	query := `
		INSERT INTO documents (id, user_id, file_name, mime_type, size_bytes, storage_key, url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, file_name) DO UPDATE SET
			mime_type = EXCLUDED.mime_type,
			size_bytes = EXCLUDED.size_bytes,
			storage_key = EXCLUDED.storage_key,
			url = EXCLUDED.url,
			uploaded_at = EXCLUDED.uploaded_at
		RETURNING ` + documentColumns

	row := r.db.QueryRowContext(ctx, query,
		d.ID, d.UserID, d.FileName, d.MimeType, d.SizeBytes, d.StorageKey, d.URL, d.UploadedAt)

	out, err := scanDocument(row)
	if err != nil {
		return Document{}, fmt.Errorf("upsert document: %w", err)
	}
	return out, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (r *PGRepo) GetByUserAndFileName(ctx context.Context, userID, fileName string) (Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 AND file_name = $2`
	row := r.db.QueryRowContext(ctx, query, userID, fileName)

	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document by file name: %w", err)
	}
	return d, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY uploaded_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.UserID, &d.FileName, &d.MimeType, &d.SizeBytes, &d.StorageKey, &d.URL, &d.UploadedAt)
	return d, err
}
