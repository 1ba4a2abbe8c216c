package document

import "github.com/lessonbuilder/backend/internal/models"

// DragState models drag-and-drop as two events: Start records the dragged
// block, Drop consumes it. The zero value has nothing in flight.
type DragState struct {
	BlockID string `json:"blockId,omitempty"`
}

// Start records the block being dragged
func (d DragState) Start(blockID string) DragState {
	return DragState{BlockID: blockID}
}

// Active reports whether a drag is in flight
func (d DragState) Active() bool {
	return d.BlockID != ""
}

// Drop moves the dragged block to targetIndex and clears the drag. A drop
// without a start, or of a block that is not in sec, leaves sec unchanged.
func (d DragState) Drop(sec models.Section, targetIndex int) (DragState, models.Section, bool) {
	if !d.Active() || sec.IndexOf(d.BlockID) < 0 {
		return DragState{}, sec, false
	}
	before := sec.IndexOf(d.BlockID)
	next := ReorderBlock(sec, d.BlockID, targetIndex)
	return DragState{}, next, next.IndexOf(d.BlockID) != before
}
