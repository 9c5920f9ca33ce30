package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tomato/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID           int64  `json:"id"`
	Task         string `json:"task"`
	TaskID       int64  `json:"task_id"`
	StartedAt    string `json:"started_at"`
	CompletedAt  string `json:"completed_at,omitempty"`
	Cycles       int    `json:"cycles_completed"`
	TotalCycles  int    `json:"total_cycles"`
	FocusSeconds int64  `json:"focus_seconds"`
	FocusTime    string `json:"focus_time"`
	Status       string `json:"status"`
}

func ToJSON(sessions []store.FocusSession, tasks map[int64]*store.Task, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
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
		focusSecs := int64(s.WorkDuration) * int64(s.CyclesCompleted)

		export.Sessions = append(export.Sessions, jsonSession{
			ID:           s.ID,
			Task:         taskName,
			TaskID:       s.TaskID,
			StartedAt:    s.StartedAt.Local().Format(time.RFC3339),
			CompletedAt:  completedStr,
			Cycles:       s.CyclesCompleted,
			TotalCycles:  s.TotalCycles,
			FocusSeconds: focusSecs,
			FocusTime:    formatDuration(focusSecs),
			Status:       s.Status,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
