package report

import (
	"fmt"

	"schemascope/domain/core"
)

// Panel enumerates the plot views of the tabbed section.
type Panel int

const (
	// PanelSizeDistribution is the initially active view.
	PanelSizeDistribution Panel = iota
	PanelSizePerAllele

	panelCount
)

// Valid reports whether p names one of the fixed panels.
func (p Panel) Valid() bool {
	return p >= 0 && p < panelCount
}

func (p Panel) String() string {
	switch p {
	case PanelSizeDistribution:
		return "size-distribution"
	case PanelSizePerAllele:
		return "size-per-allele"
	}
	return fmt.Sprintf("panel(%d)", int(p))
}

// PanelState is the one piece of UI state a locus report owns: which plot
// panel is visible. Every assembled report starts a fresh state at the
// size distribution; nothing about the selection survives a reload. Both
// panels stay mounted whatever the selection, so the hidden widget keeps
// its internal state.
type PanelState struct {
	active Panel
}

// NewPanelState returns the initial selection.
func NewPanelState() *PanelState {
	return &PanelState{active: PanelSizeDistribution}
}

// Select switches the visible panel. Values outside the fixed set are
// rejected and leave the selection unchanged.
func (s *PanelState) Select(p Panel) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", core.ErrInvalidPanel, int(p))
	}
	s.active = p
	return nil
}

// Active returns the currently visible panel.
func (s *PanelState) Active() Panel {
	return s.active
}
