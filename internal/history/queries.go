package history

import (
	"database/sql"

	"github.com/kordes/clipsense/internal/entry"
	"github.com/kordes/clipsense/internal/errors"
)

// Insert stores a new clipboard entry.
func Insert(db *sql.DB, e *entry.Entry) error {
	sourceApp := toNullString(e.SourceApp)

	var category sql.NullString
	if e.Category != nil {
		category = sql.NullString{String: string(*e.Category), Valid: true}
	}

	query := `
		INSERT INTO entries (
			id, content, content_chars, source_app, category, favorite, captured_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		e.ID, e.Content, e.ContentChars, sourceApp, category, boolToInt(e.Favorite), e.CapturedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetByID retrieves an entry by its ULID.
func GetByID(db *sql.DB, id string) (*entry.Entry, error) {
	query := `
		SELECT id, content, content_chars, source_app, category, favorite, captured_at
		FROM entries
		WHERE id = ?
	`

	row := db.QueryRow(query, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return e, nil
}

// ListInput filters and pages a history listing.
type ListInput struct {
	Category      *entry.Category
	SourceApp     string
	FavoritesOnly bool
	Limit         int
	Offset        int
}

// List returns entries newest first, optionally filtered.
func List(db *sql.DB, input ListInput) ([]*entry.Entry, error) {
	query := `
		SELECT id, content, content_chars, source_app, category, favorite, captured_at
		FROM entries
		WHERE 1=1
	`
	args := []any{}

	if input.Category != nil {
		query += " AND category = ?"
		args = append(args, string(*input.Category))
	}
	if input.SourceApp != "" {
		query += " AND source_app LIKE ?"
		args = append(args, "%"+input.SourceApp+"%")
	}
	if input.FavoritesOnly {
		query += " AND favorite = 1"
	}

	query += " ORDER BY captured_at DESC, id DESC"

	if input.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, input.Limit)
		if input.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, input.Offset)
		}
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var result []*entry.Entry
	for rows.Next() {
		e, err := scanEntryRows(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return result, nil
}

// Count returns the total number of stored entries.
func Count(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// SetFavorite updates the favorite flag.
func SetFavorite(db *sql.DB, id string, favorite bool) error {
	result, err := db.Exec("UPDATE entries SET favorite = ? WHERE id = ?", boolToInt(favorite), id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireRow(result, id)
}

// SetCategory records a lazily computed category on an entry.
func SetCategory(db *sql.DB, id string, category entry.Category) error {
	result, err := db.Exec("UPDATE entries SET category = ? WHERE id = ?", string(category), id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireRow(result, id)
}

// Delete removes an entry permanently.
func Delete(db *sql.DB, id string) error {
	result, err := db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireRow(result, id)
}

// requireRow converts a zero-row update into NOT_FOUND.
func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row *sql.Row) (*entry.Entry, error) {
	return scanFrom(row)
}

func scanEntryRows(rows *sql.Rows) (*entry.Entry, error) {
	return scanFrom(rows)
}

func scanFrom(scanner rowScanner) (*entry.Entry, error) {
	var (
		e         entry.Entry
		sourceApp sql.NullString
		category  sql.NullString
		favorite  int
	)

	err := scanner.Scan(
		&e.ID, &e.Content, &e.ContentChars, &sourceApp, &category, &favorite, &e.CapturedAt,
	)
	if err != nil {
		return nil, err
	}

	e.SourceApp = fromNullString(sourceApp)
	if category.Valid {
		cat := entry.Category(category.String)
		e.Category = &cat
	}
	e.Favorite = favorite != 0

	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
