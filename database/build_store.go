package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrBuildNotFound is returned when no build matches the requested id.
var ErrBuildNotFound = errors.New("build not found")

// Build is one recorded deck build.
type Build struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"createdAt"`
	PlanPath   string        `json:"planPath"`
	Output     string        `json:"output"`
	Title      string        `json:"title"`
	Slides     int           `json:"slides"`
	Layouts    []string      `json:"layouts"`
	Bytes      int64         `json:"bytes"`
	Duration   time.Duration `json:"duration"`
	Language   string        `json:"language"`
	Handout    string        `json:"handout,omitempty"`
	PreviewDir string        `json:"previewDir,omitempty"`
}

// BuildStore records and queries deck builds.
type BuildStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewBuildStore creates a new BuildStore instance
func NewBuildStore(db *sql.DB) *BuildStore {
	return &BuildStore{
		db:  db,
		now: time.Now,
	}
}

const buildColumns = `id, created_at, plan_path, output, title, slides, layouts, bytes, duration_ms, language, handout, preview_dir`

// Record inserts b, filling in ID and CreatedAt when they are zero.
func (s *BuildStore) Record(ctx context.Context, b *Build) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if b.Output == "" {
		return fmt.Errorf("output path is required")
	}

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now()
	}
	// Stored in UTC at microsecond precision, matching DATETIME(6).
	b.CreatedAt = b.CreatedAt.UTC().Truncate(time.Microsecond)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deck_builds (`+buildColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.CreatedAt, b.PlanPath, b.Output, b.Title, b.Slides,
		strings.Join(b.Layouts, ","), b.Bytes, b.Duration.Milliseconds(), b.Language,
		nullString(b.Handout), nullString(b.PreviewDir),
	)
	if err != nil {
		return fmt.Errorf("failed to insert build: %w", err)
	}
	return nil
}

// List returns up to limit builds, most recent first. A limit <= 0 returns
// every build.
func (s *BuildStore) List(ctx context.Context, limit int) ([]Build, error) {
	query := `SELECT ` + buildColumns + ` FROM deck_builds ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read builds: %w", err)
	}
	return builds, nil
}

// Get returns the build with the given id.
func (s *BuildStore) Get(ctx context.Context, id string) (*Build, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+buildColumns+` FROM deck_builds WHERE id = ?`, id)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBuildNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the build with the given id.
func (s *BuildStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deck_builds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete build: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete build: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrBuildNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (*Build, error) {
	var (
		b          Build
		layouts    string
		durationMs int64
		handout    sql.NullString
		previewDir sql.NullString
	)
	err := row.Scan(&b.ID, &b.CreatedAt, &b.PlanPath, &b.Output, &b.Title, &b.Slides,
		&layouts, &b.Bytes, &durationMs, &b.Language, &handout, &previewDir)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan build: %w", err)
	}

	if layouts != "" {
		b.Layouts = strings.Split(layouts, ",")
	}
	b.Duration = time.Duration(durationMs) * time.Millisecond
	b.Handout = handout.String
	b.PreviewDir = previewDir.String
	return &b, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
