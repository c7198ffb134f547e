package store

import (
	"context"
	"os"

	"github.com/rcliao/cru-schedule/internal/model"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string        `json:"db_path"`
	DBSizeBytes int64         `json:"db_size_bytes"`
	Selections  int           `json:"selections"`
	WeeklyHours float64       `json:"weekly_hours"`
	Courses     []CourseStats `json:"courses"`
	Days        []DayStats    `json:"days"`
}

// CourseStats holds per-course counts.
type CourseStats struct {
	Course string `json:"course"`
	Count  int    `json:"count"`
}

// DayStats holds per-day counts.
type DayStats struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(end_min - start_min), 0) FROM selections`).
		Scan(&st.Selections, &total); err != nil {
		return st, err
	}
	st.WeeklyHours = float64(total) / 60

	rows, err := s.db.QueryContext(ctx, `
		SELECT course, COUNT(*) AS cnt
		FROM selections
		GROUP BY course ORDER BY cnt DESC, course`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var cs CourseStats
		if err := rows.Scan(&cs.Course, &cs.Count); err != nil {
			return st, err
		}
		st.Courses = append(st.Courses, cs)
	}

	perDay := map[string]int{}
	dayRows, err := s.db.QueryContext(ctx, `SELECT day, COUNT(*) FROM selections GROUP BY day`)
	if err != nil {
		return st, err
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var day string
		var n int
		if err := dayRows.Scan(&day, &n); err != nil {
			return st, err
		}
		perDay[day] = n
	}

	// week order rather than alphabetical
	for _, d := range model.Days {
		if n := perDay[string(d)]; n > 0 {
			st.Days = append(st.Days, DayStats{Day: d.Name(), Count: n})
		}
	}

	return st, nil
}
