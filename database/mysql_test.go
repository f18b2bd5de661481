package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrslides/dbpool"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestMigrate_MySQL(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		expectErr string
	}{
		{
			name: "fresh database",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS schema_migrations.*DATETIME\(6\).*ENGINE=InnoDB`).
					WillReturnResult(sqlmock.NewResult(0, 0))

				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations`).WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectBegin()
				mock.ExpectExec(`(?s)CREATE TABLE deck_builds.*VARCHAR\(36\) PRIMARY KEY`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`CREATE INDEX idx_deck_builds_created`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO schema_migrations`).
					WithArgs(int64(1), "Create deck_builds table", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()

				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations`).WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectBegin()
				mock.ExpectExec(`ALTER TABLE deck_builds ADD COLUMN handout`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`ALTER TABLE deck_builds ADD COLUMN preview_dir`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO schema_migrations`).
					WithArgs(int64(2), sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "already migrated",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				for _, v := range []int{1, 2} {
					mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations`).WithArgs(int64(v)).
						WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				}
			},
		},
		{
			name: "failing statement rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations`).WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectBegin()
				mock.ExpectExec(`CREATE TABLE deck_builds`).WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectErr: "failed to execute migration 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			tt.setupMock(mock)

			err := Migrate(db, dbpool.NewDialect(dbpool.EngineMySQL), nil)
			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBuildStore_MySQL(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	t.Run("record", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewBuildStore(db)

		b := sampleBuild()
		b.ID = "6f1c0c1e-8f3e-4a47-9a53-1d7f0c2b9e10"
		b.CreatedAt = created
		b.PreviewDir = "out/preview"

		mock.ExpectExec(`INSERT INTO deck_builds`).
			WithArgs(b.ID, created, "plans/gpec.json", "out/gpec.pptx", "GPEC 2026", int64(21),
				"title,agenda,kpi_dashboard", int64(48213), int64(1250), "fr", nil, "out/preview").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, store.Record(ctx, b))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewBuildStore(db)

		rows := sqlmock.NewRows([]string{"id", "created_at", "plan_path", "output", "title", "slides",
			"layouts", "bytes", "duration_ms", "language", "handout", "preview_dir"}).
			AddRow("abc", created, "p.yaml", "o.pptx", "Deck", 4, "title,closing", 9000, 800, "en", "o.pdf", nil)
		mock.ExpectQuery(`SELECT .* FROM deck_builds WHERE id = \?`).WithArgs("abc").WillReturnRows(rows)

		b, err := store.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, []string{"title", "closing"}, b.Layouts)
		assert.Equal(t, 800*time.Millisecond, b.Duration)
		assert.Equal(t, "o.pdf", b.Handout)
		assert.Empty(t, b.PreviewDir)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get missing", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewBuildStore(db)

		mock.ExpectQuery(`SELECT .* FROM deck_builds WHERE id = \?`).WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrBuildNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list with limit", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewBuildStore(db)

		mock.ExpectQuery(`ORDER BY created_at DESC, id DESC LIMIT \?`).WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		builds, err := store.List(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, builds)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete missing", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewBuildStore(db)

		mock.ExpectExec(`DELETE FROM deck_builds WHERE id = \?`).WithArgs("gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, store.Delete(ctx, "gone"), ErrBuildNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
