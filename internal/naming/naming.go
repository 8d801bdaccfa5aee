// Package naming maps raw slot ids to the human-friendly labels used in
// export filenames. The mapping is injected at startup (optionally from a
// JSON file) so new slots never require a code change; unknown ids degrade to
// the raw id.
package naming

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const defaultArchiveBase = "renovation"

type Table struct {
	slots    map[string]string
	projects map[string]string
}

// NewTable builds a table from a slot-id label map and a project-prefix name
// map. Nil maps are allowed.
func NewTable(slots, projects map[string]string) *Table {
	if slots == nil {
		slots = map[string]string{}
	}
	if projects == nil {
		projects = map[string]string{}
	}
	return &Table{slots: slots, projects: projects}
}

// Default returns the built-in mapping for the current renovation projects.
func Default() *Table {
	return NewTable(
		map[string]string{
			"p1-dishwasher-latch": "dishwasher-latch",
			"p1-cabinet-doors":    "cabinet-doors",
			"p1-backsplash":       "backsplash",
			"p2-vanity":           "vanity",
			"p2-shower-tile":      "shower-tile",
		},
		map[string]string{
			"p1": "kitchen",
			"p2": "bathroom",
		},
	)
}

type tableFile struct {
	Slots    map[string]string `json:"slots"`
	Projects map[string]string `json:"projects"`
}

// LoadFile reads a table from a JSON file of the shape
// {"slots": {id: label}, "projects": {prefix: name}}.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read names file: %w", err)
	}
	var tf tableFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse names file: %w", err)
	}
	return NewTable(tf.Slots, tf.Projects), nil
}

// SlotLabel returns the friendly base name for archive entries, falling back
// to the raw slot id.
func (t *Table) SlotLabel(slotID string) string {
	if label, ok := t.slots[slotID]; ok {
		return sanitize(label)
	}
	return sanitize(slotID)
}

// ArchiveName returns the download filename for a slot's archive. The project
// is looked up from the slot id's leading segment ("p1-vanity" -> "p1");
// unknown projects fall back to a generic name.
func (t *Table) ArchiveName(slotID string) string {
	base := defaultArchiveBase
	if prefix, _, found := strings.Cut(slotID, "-"); found {
		if name, ok := t.projects[prefix]; ok {
			base = name
		}
	} else if name, ok := t.projects[slotID]; ok {
		base = name
	}
	return sanitize(base) + "-photos.zip"
}

// sanitize keeps labels filename-safe: lowercase, spaces collapsed to
// hyphens, anything outside [a-z0-9._-] dropped.
func sanitize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return defaultArchiveBase
	}
	return b.String()
}
