// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import "github.com/taibuivan/reignline/internal/chronicle"

// DragOffset is a visual-only vertical offset for one node during a drag gesture.
type DragOffset struct {
	PersonID string  `json:"personId"`
	DeltaY   float64 `json:"deltaY"`
}

// Drag tracks one in-progress drag gesture. The zero value is idle.
//
// It is interaction state owned by a single client and is not safe for concurrent use.
type Drag struct {
	personID string
	deltaY   float64
	active   bool
}

// Begin starts a gesture on personID, discarding any previous uncommitted delta.
func (d *Drag) Begin(personID string) {
	*d = Drag{personID: personID, active: true}
}

// Update sets the accumulated pointer delta since Begin. It is ignored while idle.
func (d *Drag) Update(deltaY float64) {
	if d.active {
		d.deltaY = deltaY
	}
}

// Overlay returns the offset to feed into [Input.Drag], or nil while idle.
func (d *Drag) Overlay() *DragOffset {
	if !d.active {
		return nil
	}
	return &DragOffset{PersonID: d.personID, DeltaY: d.deltaY}
}

// Active reports whether a gesture is in progress.
func (d *Drag) Active() bool {
	return d.active
}

// Release ends the gesture and returns the delta to commit. ok is false while idle.
func (d *Drag) Release() (offset DragOffset, ok bool) {
	if !d.active {
		return DragOffset{}, false
	}
	offset = DragOffset{PersonID: d.personID, DeltaY: d.deltaY}
	*d = Drag{}
	return offset, true
}

// Cancel ends the gesture without committing anything.
func (d *Drag) Cancel() {
	*d = Drag{}
}

// Commit converts a released drag into a record update via [Engine.MovePosition].
func (e *Engine) Commit(offset DragOffset) (chronicle.Person, error) {
	return e.MovePosition(offset.PersonID, offset.DeltaY)
}
