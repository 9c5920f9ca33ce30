package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateTask(name string, durationMinutes int) (*Task, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (name, duration_minutes, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		name, durationMinutes, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t := &Task{}
	var createdAt, updatedAt string
	var completed, archived int
	err := s.db.QueryRow(
		`SELECT id, name, duration_minutes, completed, archived, created_at, updated_at FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.DurationMinutes, &completed, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	t.Completed = completed == 1
	t.Archived = archived == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

func (s *Store) ListTasks(includeArchived bool) ([]Task, error) {
	query := `SELECT id, name, duration_minutes, completed, archived, created_at, updated_at FROM tasks`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY completed, name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var createdAt, updatedAt string
		var completed, archived int
		if err := rows.Scan(&t.ID, &t.Name, &t.DurationMinutes, &completed, &archived, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		t.Completed = completed == 1
		t.Archived = archived == 1
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(id int64, name string, durationMinutes int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET name = ?, duration_minutes = ?, updated_at = ? WHERE id = ?`,
		name, durationMinutes, now, id,
	)
	return err
}

// CompleteTask marks a task finished; the timer controller calls this
// when the final cycle's work phase ends.
func (s *Store) CompleteTask(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET completed = 1, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}

func (s *Store) ReopenTask(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET completed = 0, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}

func (s *Store) ArchiveTask(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET archived = 1, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}
