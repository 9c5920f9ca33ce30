package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"tomato/internal/store"
)

func ToCSV(sessions []store.FocusSession, tasks map[int64]*store.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Task", "Started", "Completed", "Cycles", "Total", "Focus Time", "Status"}); err != nil {
		return err
	}

	for _, s := range sessions {
		taskName := "Unknown"
		if t, ok := tasks[s.TaskID]; ok {
			taskName = t.Name
		}
		completedStr := ""
		if s.CompletedAt != nil {
			completedStr = s.CompletedAt.Local().Format(time.RFC3339)
		}
		focus := formatDuration(int64(s.WorkDuration) * int64(s.CyclesCompleted))

		row := []string{
			fmt.Sprintf("%d", s.ID),
			taskName,
			s.StartedAt.Local().Format(time.RFC3339),
			completedStr,
			fmt.Sprintf("%d", s.CyclesCompleted),
			fmt.Sprintf("%d", s.TotalCycles),
			focus,
			s.Status,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
