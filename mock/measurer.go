package mock

import (
	"github.com/haslan/marginalia"
	"github.com/haslan/marginalia/sidenote"
)

var _ sidenote.Measurer = (*Measurer)(nil)

// Measurer is a mock implementation of sidenote.Measurer backed by fixed
// geometry.
type Measurer struct {
	Refs      map[string]marginalia.Rect
	Sizes     map[string]marginalia.Size
	ColumnVal marginalia.Rect
	View      marginalia.Size
}

func (m *Measurer) NoteRects(id string) (marginalia.Rect, marginalia.Size, bool) {
	ref, ok := m.Refs[id]
	if !ok {
		return marginalia.Rect{}, marginalia.Size{}, false
	}
	return ref, m.Sizes[id], true
}

func (m *Measurer) Column() marginalia.Rect {
	return m.ColumnVal
}

func (m *Measurer) Viewport() marginalia.Size {
	return m.View
}
