package store

import "time"

type Task struct {
	ID              int64
	Name            string
	DurationMinutes int
	Completed       bool
	Archived        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FocusSession is one recorded run of a task's work/rest cycle.
type FocusSession struct {
	ID              int64
	TaskID          int64
	WorkDuration    int // seconds
	RestDuration    int // seconds
	CyclesCompleted int
	TotalCycles     int
	Status          string // running, completed, cancelled
	StartedAt       time.Time
	CompletedAt     *time.Time
}

// DailyCycles is the per-day aggregate feeding the stats chart.
type DailyCycles struct {
	Date     string
	Cycles   int64
	Sessions int
}

// SessionStats summarizes sessions in a date range.
type SessionStats struct {
	TotalSessions     int
	CompletedSessions int
	TotalCycles       int64
	FocusSeconds      int64
}
