package task

import "time"

// Priority is the urgency level of a task.
type Priority string

// Valid priorities.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority validates a raw priority string.
func ParsePriority(raw string) (Priority, bool) {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(raw), true
	}
	return "", false
}

// Task represents a to-do item owned by a single user.
type Task struct {
	ID          string     // ID is the opaque unique identifier for the task
	UserID      string     // UserID is the id of the owning user
	Title       string     // Title is the short task summary (required)
	Description string     // Description is the optional longer text
	Priority    Priority   // Priority is Low, Medium or High
	IsCompleted bool       // IsCompleted marks the task done
	DueDate     *time.Time // DueDate is the optional deadline
	CreatedAt   time.Time  // CreatedAt is when the task was created
	UpdatedAt   time.Time  // UpdatedAt is when the task was last modified
}

// Stats holds derived counts over a user's task list.
type Stats struct {
	Total      int
	Completed  int
	Incomplete int
	Low        int
	Medium     int
	High       int
}

// ComputeStats scans a task list and tallies counts by completion
// state and priority.
func ComputeStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted {
			s.Completed++
		} else {
			s.Incomplete++
		}
		switch t.Priority {
		case PriorityLow:
			s.Low++
		case PriorityMedium:
			s.Medium++
		case PriorityHigh:
			s.High++
		}
	}
	return s
}
