package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/cru-schedule/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS selections (
		id          TEXT PRIMARY KEY,
		course      TEXT NOT NULL,
		kind        TEXT NOT NULL,
		capacity    INTEGER NOT NULL,
		day         TEXT NOT NULL,
		start_min   INTEGER NOT NULL,
		end_min     INTEGER NOT NULL,
		grp         TEXT NOT NULL,
		room        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	DROP INDEX IF EXISTS idx_selections_slot;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_selections_slot_group
		ON selections(course, kind, day, start_min, grp, room);
	CREATE INDEX IF NOT EXISTS idx_selections_created ON selections(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func minutes(t model.TimeOfDay) int {
	return t.Hour()*60 + t.Minute()
}

func fromMinutes(m int) (model.TimeOfDay, error) {
	return model.NewTimeOfDay(m/60, m%60)
}

func (s *SQLiteStore) Add(ctx context.Context, p AddParams) (*model.Selection, error) {
	if p.Course == "" {
		return nil, fmt.Errorf("course is required")
	}
	if !p.Slot.Day.Valid() {
		return nil, fmt.Errorf("invalid day %q", p.Slot.Day)
	}
	if !p.Slot.End.After(p.Slot.Start) {
		return nil, fmt.Errorf("slot %s-%s: end must be after start", p.Slot.Start, p.Slot.End)
	}

	sel := &model.Selection{
		ID:        s.newID(),
		Course:    p.Course,
		Slot:      p.Slot,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO selections (id, course, kind, capacity, day, start_min, end_min, grp, room, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sel.ID, sel.Course, p.Slot.Kind, p.Slot.Capacity, string(p.Slot.Day),
		minutes(p.Slot.Start), minutes(p.Slot.End), p.Slot.Group, p.Slot.Room,
		sel.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %s %s group %s on %s at %s",
				ErrDuplicateSelection, p.Course, p.Slot.Kind, p.Slot.Group, p.Slot.Day.Name(), p.Slot.Start)
		}
		return nil, fmt.Errorf("insert selection: %w", err)
	}
	return sel, nil
}

const selectColumns = `id, course, kind, capacity, day, start_min, end_min, grp, room, created_at`

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Selection, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if p.Course != "" {
		where = append(where, "course = ?")
		args = append(args, p.Course)
	}
	if p.Day != "" {
		where = append(where, "day = ?")
		args = append(args, string(p.Day))
	}

	query := fmt.Sprintf(`SELECT %s FROM selections WHERE %s ORDER BY created_at, rowid`,
		selectColumns, strings.Join(where, " AND "))
	if p.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, p.Limit)
	}

	return s.query(ctx, query, args...)
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...interface{}) ([]model.Selection, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Selection
	for rows.Next() {
		sel, err := scanSelection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Rm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM selections WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSelectionNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM selections`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSelection(row scanner) (model.Selection, error) {
	var sel model.Selection
	var day, createdAt string
	var startMin, endMin int

	err := row.Scan(
		&sel.ID, &sel.Course, &sel.Slot.Kind, &sel.Slot.Capacity, &day,
		&startMin, &endMin, &sel.Slot.Group, &sel.Slot.Room, &createdAt,
	)
	if err != nil {
		return sel, err
	}

	sel.Slot.Day = model.Day(day)
	if sel.Slot.Start, err = fromMinutes(startMin); err != nil {
		return sel, fmt.Errorf("selection %s: %w", sel.ID, err)
	}
	if sel.Slot.End, err = fromMinutes(endMin); err != nil {
		return sel, fmt.Errorf("selection %s: %w", sel.ID, err)
	}
	sel.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return sel, nil
}
