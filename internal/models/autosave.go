package models

import "time"

// AutosaveSlot is one stored autosave entry
type AutosaveSlot struct {
	Key       string
	Data      []byte
	UpdatedAt time.Time
}
