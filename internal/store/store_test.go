package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// insertSession is a test helper that inserts a session row with a
// given start offset and cycle count.
func insertSession(t *testing.T, s *Store, taskID int64, startOffset time.Duration, cycles int, status string) int64 {
	t.Helper()
	start := time.Now().UTC().Add(-startOffset)
	res, err := s.db.Exec(
		`INSERT INTO focus_sessions (task_id, cycles_completed, total_cycles, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		taskID, cycles, cycles, status, start.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/tomato.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Tasks
// ============================================================

func TestCreateAndGetTask(t *testing.T) {
	s := newTestStore(t)

	task, err := s.CreateTask("Write report", 45)
	if err != nil {
		t.Fatal(err)
	}
	if task.ID == 0 {
		t.Fatal("task ID not set")
	}
	if task.Name != "Write report" || task.DurationMinutes != 45 {
		t.Fatalf("task = %+v", task)
	}
	if task.Completed || task.Archived {
		t.Fatal("new task should be open and unarchived")
	}

	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != task.Name {
		t.Fatalf("get returned %+v", got)
	}
}

func TestGetTaskMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetTask(999); err == nil {
		t.Fatal("expected error for missing task")
	}
}

func TestListTasksOrdering(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateTask("Alpha", 30)
	b, _ := s.CreateTask("Beta", 30)
	s.CompleteTask(a.ID)

	tasks, err := s.ListTasks(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	// Open tasks sort before completed ones.
	if tasks[0].ID != b.ID || tasks[1].ID != a.ID {
		t.Fatalf("order = %v, %v", tasks[0].Name, tasks[1].Name)
	}
	if !tasks[1].Completed {
		t.Fatal("completed flag lost in list")
	}
}

func TestListTasksExcludesArchived(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateTask("Keep", 30)
	b, _ := s.CreateTask("Gone", 30)
	s.ArchiveTask(b.ID)

	tasks, _ := s.ListTasks(false)
	if len(tasks) != 1 || tasks[0].ID != a.ID {
		t.Fatalf("tasks = %+v", tasks)
	}

	all, _ := s.ListTasks(true)
	if len(all) != 2 {
		t.Fatalf("with archived: %d tasks", len(all))
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("Old", 30)

	if err := s.UpdateTask(task.ID, "New", 90); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(task.ID)
	if got.Name != "New" || got.DurationMinutes != 90 {
		t.Fatalf("task = %+v", got)
	}
}

func TestCompleteAndReopenTask(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("Finish me", 30)

	if err := s.CompleteTask(task.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(task.ID)
	if !got.Completed {
		t.Fatal("task not completed")
	}

	if err := s.ReopenTask(task.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetTask(task.ID)
	if got.Completed {
		t.Fatal("task still completed after reopen")
	}
}

// ============================================================
// Focus sessions
// ============================================================

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("Deep work", 45)

	sess, err := s.StartSession(task.ID, 1500, 300, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Status != "running" || sess.TotalCycles != 2 {
		t.Fatalf("session = %+v", sess)
	}
	if sess.CompletedAt != nil {
		t.Fatal("running session should have no completion time")
	}

	if err := s.IncrementSessionCycles(sess.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSession(sess.ID)
	if got.CyclesCompleted != 1 {
		t.Fatalf("cycles = %d, want 1", got.CyclesCompleted)
	}

	if err := s.CompleteSession(sess.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetSession(sess.ID)
	if got.Status != "completed" {
		t.Fatalf("status = %q", got.Status)
	}
	if got.CyclesCompleted != got.TotalCycles {
		t.Fatal("completion should fill the cycle count")
	}
	if got.CompletedAt == nil {
		t.Fatal("completed session needs a completion time")
	}
}

func TestCancelSession(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("Abandoned", 30)
	sess, _ := s.StartSession(task.ID, 1500, 300, 1)

	if err := s.CancelSession(sess.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSession(sess.ID)
	if got.Status != "cancelled" || got.CompletedAt == nil {
		t.Fatalf("session = %+v", got)
	}
}

func TestListSessions(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("T", 30)
	insertSession(t, s, task.ID, 2*time.Hour, 1, "completed")
	insertSession(t, s, task.ID, time.Hour, 2, "completed")
	insertSession(t, s, task.ID, 0, 0, "running")

	sessions, err := s.ListSessions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions", len(sessions))
	}
	// Newest first.
	if !sessions[0].StartedAt.After(sessions[2].StartedAt) {
		t.Fatal("sessions not sorted by start time desc")
	}

	limited, _ := s.ListSessions(2)
	if len(limited) != 2 {
		t.Fatalf("limit ignored: %d sessions", len(limited))
	}
}

func TestGetDailyCycles(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("T", 30)
	insertSession(t, s, task.ID, time.Hour, 2, "completed")
	insertSession(t, s, task.ID, 2*time.Hour, 1, "completed")

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now.AddDate(0, 0, 1)

	days, err := s.GetDailyCycles(from, to)
	if err != nil {
		t.Fatal(err)
	}
	var total int64
	for _, d := range days {
		total += d.Cycles
	}
	if total != 3 {
		t.Fatalf("total cycles = %d, want 3", total)
	}
}

func TestGetSessionStats(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("T", 30)
	insertSession(t, s, task.ID, time.Hour, 2, "completed")
	insertSession(t, s, task.ID, time.Hour, 1, "cancelled")

	now := time.Now().UTC()
	st, err := s.GetSessionStats(now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d, want 2", st.TotalSessions)
	}
	if st.CompletedSessions != 1 {
		t.Errorf("CompletedSessions = %d, want 1", st.CompletedSessions)
	}
	if st.TotalCycles != 3 {
		t.Errorf("TotalCycles = %d, want 3", st.TotalCycles)
	}
	if st.FocusSeconds != 3*1500 {
		t.Errorf("FocusSeconds = %d, want %d", st.FocusSeconds, 3*1500)
	}
}
