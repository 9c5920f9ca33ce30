package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) StartSession(taskID int64, workSecs, restSecs, totalCycles int) (*FocusSession, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO focus_sessions (task_id, work_duration, rest_duration, total_cycles, status, started_at)
		 VALUES (?, ?, ?, ?, 'running', ?)`,
		taskID, workSecs, restSecs, totalCycles, now,
	)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(id)
}

func (s *Store) GetSession(id int64) (*FocusSession, error) {
	f := &FocusSession{}
	var startedAt string
	var completedAt sql.NullString

	err := s.db.QueryRow(
		`SELECT id, task_id, work_duration, rest_duration, cycles_completed, total_cycles, status, started_at, completed_at
		 FROM focus_sessions WHERE id = ?`, id,
	).Scan(&f.ID, &f.TaskID, &f.WorkDuration, &f.RestDuration, &f.CyclesCompleted, &f.TotalCycles, &f.Status, &startedAt, &completedAt)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	f.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		f.CompletedAt = &t
	}
	return f, nil
}

func (s *Store) IncrementSessionCycles(id int64) error {
	_, err := s.db.Exec(
		`UPDATE focus_sessions SET cycles_completed = cycles_completed + 1 WHERE id = ?`, id,
	)
	return err
}

func (s *Store) CompleteSession(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE focus_sessions SET status = 'completed', completed_at = ?, cycles_completed = total_cycles WHERE id = ?`,
		now, id,
	)
	return err
}

func (s *Store) CancelSession(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE focus_sessions SET status = 'cancelled', completed_at = ? WHERE id = ?`,
		now, id,
	)
	return err
}

func (s *Store) ListSessions(limit int) ([]FocusSession, error) {
	query := `SELECT id, task_id, work_duration, rest_duration, cycles_completed, total_cycles, status, started_at, completed_at
	          FROM focus_sessions ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []FocusSession
	for rows.Next() {
		var f FocusSession
		var startedAt string
		var completedAt sql.NullString
		if err := rows.Scan(&f.ID, &f.TaskID, &f.WorkDuration, &f.RestDuration, &f.CyclesCompleted, &f.TotalCycles, &f.Status, &startedAt, &completedAt); err != nil {
			return nil, err
		}
		f.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if completedAt.Valid {
			t, _ := time.Parse(time.RFC3339, completedAt.String)
			f.CompletedAt = &t
		}
		sessions = append(sessions, f)
	}
	return sessions, rows.Err()
}

// GetDailyCycles aggregates completed cycles per day for the stats chart.
func (s *Store) GetDailyCycles(from, to time.Time) ([]DailyCycles, error) {
	rows, err := s.db.Query(`
		SELECT substr(started_at, 1, 10), COALESCE(SUM(cycles_completed), 0), COUNT(*)
		FROM focus_sessions
		WHERE started_at >= ? AND started_at < ?
		GROUP BY substr(started_at, 1, 10)
		ORDER BY substr(started_at, 1, 10)`,
		from.Format(time.RFC3339), to.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily cycles: %w", err)
	}
	defer rows.Close()

	var out []DailyCycles
	for rows.Next() {
		var d DailyCycles
		if err := rows.Scan(&d.Date, &d.Cycles, &d.Sessions); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetSessionStats returns session totals in [from, to). Focus time
// counts completed work cycles only.
func (s *Store) GetSessionStats(from, to time.Time) (SessionStats, error) {
	var st SessionStats
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(cycles_completed), 0),
		       COALESCE(SUM(cycles_completed * work_duration), 0)
		FROM focus_sessions
		WHERE started_at >= ? AND started_at < ?`,
		from.Format(time.RFC3339), to.Format(time.RFC3339),
	).Scan(&st.TotalSessions, &st.CompletedSessions, &st.TotalCycles, &st.FocusSeconds)
	if err != nil {
		return SessionStats{}, fmt.Errorf("session stats: %w", err)
	}
	return st, nil
}
