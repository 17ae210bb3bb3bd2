package postgres

import (
	"context"
	"database/sql"

	"diaryapi/internal/model"
	"diaryapi/internal/repository"
)

// DiaryEntryPostgres is a PostgreSQL implementation of repository.DiaryEntryRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DiaryEntryPostgres struct {
	db *sql.DB
}

// NewDiaryEntryPostgres creates a new DiaryEntryPostgres repository.
func NewDiaryEntryPostgres(db *sql.DB) *DiaryEntryPostgres {
	return &DiaryEntryPostgres{db: db}
}

var _ repository.DiaryEntryRepository = (*DiaryEntryPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*model.DiaryEntry, error) {
	var e model.DiaryEntry
	if err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Content,
		&e.Mood,
		&e.Date,
		&e.UploadDate,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new entry row and returns the stored record with its generated id.
func (r *DiaryEntryPostgres) Create(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	const q = `
		INSERT INTO dairyapi_dairyentry (title, content, mood, date, upload_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, content, mood, date, upload_date
	`
	row := r.db.QueryRowContext(ctx, q,
		entry.Title,
		entry.Content,
		entry.Mood,
		entry.Date,
		entry.UploadDate,
	)
	return scanEntry(row)
}

// FindByID fetches a single entry by its ID.
func (r *DiaryEntryPostgres) FindByID(ctx context.Context, id int64) (*model.DiaryEntry, error) {
	const q = `
		SELECT id, title, content, mood, date, upload_date
		FROM dairyapi_dairyentry
		WHERE id = $1
	`
	return scanEntry(r.db.QueryRowContext(ctx, q, id))
}

// List returns every entry, newest upload first.
func (r *DiaryEntryPostgres) List(ctx context.Context) ([]model.DiaryEntry, error) {
	const q = `
		SELECT id, title, content, mood, date, upload_date
		FROM dairyapi_dairyentry
		ORDER BY upload_date DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DiaryEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update overwrites the supplied columns and keeps the rest. upload_date is never written.
func (r *DiaryEntryPostgres) Update(ctx context.Context, id int64, changes model.DiaryEntryChanges) (*model.DiaryEntry, error) {
	const q = `
		UPDATE dairyapi_dairyentry
		SET title   = COALESCE($2, title),
		    content = COALESCE($3, content),
		    mood    = COALESCE($4, mood),
		    date    = COALESCE($5::date, date)
		WHERE id = $1
		RETURNING id, title, content, mood, date, upload_date
	`
	row := r.db.QueryRowContext(ctx, q,
		id,
		changes.Title,
		changes.Content,
		changes.Mood,
		changes.Date,
	)
	return scanEntry(row)
}

// Delete removes an entry by ID and returns sql.ErrNoRows when nothing was deleted.
func (r *DiaryEntryPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM dairyapi_dairyentry WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
