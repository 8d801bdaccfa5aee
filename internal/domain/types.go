package domain

import "time"

type ChecklistItem struct {
	ID        string
	Checked   bool
	UpdatedAt time.Time
}

type Note struct {
	ID        string
	Content   string
	UpdatedAt time.Time
}

type ProjectStatus struct {
	ID        string
	Status    string
	UpdatedAt time.Time
}

type Photo struct {
	ID           int64
	SlotID       string
	Filename     string
	OriginalName string
	UploadedAt   time.Time
}

// ProgressSnapshot is the consolidated client view: one entry per stored row,
// photos grouped by slot in descending upload order.
type ProgressSnapshot struct {
	Checklist    map[string]bool
	Notes        map[string]string
	Statuses     map[string]string
	PhotosBySlot map[string][]*Photo
}
