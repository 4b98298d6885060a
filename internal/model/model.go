package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Length is the nominal length of a beam piece in metres.
type Length int

const (
	LengthShort Length = 6  // Half-length piece, paired end-to-end when possible
	LengthLong  Length = 12 // Full-length piece, one per slot
)

func (l Length) String() string {
	return fmt.Sprintf("%dm", int(l))
}

// Valid reports whether l is one of the two supported nominal lengths.
func (l Length) Valid() bool {
	return l == LengthShort || l == LengthLong
}

// MaxShimHeight is the largest height difference (cm) between slots of one
// layer that can still be filled with shims.
const MaxShimHeight = 15.0

// LoadItem is one line of a load request: a quantity of beams of a single
// type and length at a given priority.
type LoadItem struct {
	ID       string `json:"id"`
	Label    string `json:"label,omitempty"`
	BeamID   string `json:"beam_id"`
	Length   Length `json:"length"`   // 6 or 12 metres
	Quantity int    `json:"quantity"` // Number of pieces
	Priority int    `json:"priority"` // Lower value = more urgent delivery
}

func NewLoadItem(beamID string, length Length, qty, priority int) LoadItem {
	return LoadItem{
		ID:       uuid.New().String()[:8],
		BeamID:   beamID,
		Length:   length,
		Quantity: qty,
		Priority: priority,
	}
}

// BeamPiece is a physical beam inside a slot.
type BeamPiece struct {
	Bitola string  `json:"bitola"`
	Length Length  `json:"length"`
	Weight float64 `json:"weight"` // tonnes
}

// Slot is the atomic unit placed by the layer builder. Its footprint is always
// one full beam cross-section, whether it carries one long piece, two paired
// short pieces or a single leftover short piece.
type Slot struct {
	Width    float64     `json:"width"`  // cm
	Height   float64     `json:"height"` // cm
	Weight   float64     `json:"weight"` // tonnes
	Priority int         `json:"priority"`
	Paired   bool        `json:"paired"`
	Pieces   []BeamPiece `json:"pieces"`
}

// Bitola returns the profile label of the slot's pieces.
func (s Slot) Bitola() string {
	if len(s.Pieces) == 0 {
		return ""
	}
	return s.Pieces[0].Bitola
}

// Layer is one horizontal level of the stack. Index 0 is the base.
type Layer struct {
	Index      int     `json:"index"`
	Slots      []Slot  `json:"slots"`
	TotalWidth float64 `json:"total_width"` // cm, may be widened by stabilization
	MaxHeight  float64 `json:"max_height"`
	MinHeight  float64 `json:"min_height"`
	HeightDiff float64 `json:"height_diff"`
	Priority   int     `json:"priority"` // Most urgent priority present
}

// Weight returns the sum of slot weights in the layer.
func (l Layer) Weight() float64 {
	var total float64
	for _, s := range l.Slots {
		total += s.Weight
	}
	return total
}

// SlotsWidth returns the width covered by slots and the spacing between them,
// ignoring any widening applied by stabilization.
func (l Layer) SlotsWidth(spacing float64) float64 {
	var w float64
	for i, s := range l.Slots {
		if i > 0 {
			w += spacing
		}
		w += s.Width
	}
	return w
}

// CalculationResult holds the full loading plan.
type CalculationResult struct {
	Layers           []Layer  `json:"layers"`
	TotalWeight      float64  `json:"total_weight"` // tonnes
	TotalHeight      float64  `json:"total_height"` // cm
	MaxWidthUsed     float64  `json:"max_width_used"`
	Errors           []string `json:"errors"`
	Warnings         []string `json:"warnings"`
	EngineeringNotes []string `json:"engineering_notes"`
}

// IsSafe reports whether the plan has layers and no blocking errors.
func (r CalculationResult) IsSafe() bool {
	return len(r.Errors) == 0 && len(r.Layers) > 0
}

// Utilization returns the percentage of the vehicle width used by the widest layer.
func (r CalculationResult) Utilization(maxWidth float64) float64 {
	if maxWidth <= 0 {
		return 0
	}
	return (r.MaxWidthUsed / maxWidth) * 100.0
}

// SlotCount returns the number of slots across all layers.
func (r CalculationResult) SlotCount() int {
	n := 0
	for _, l := range r.Layers {
		n += len(l.Slots)
	}
	return n
}

// PieceCount returns the number of physical beam pieces across all layers.
func (r CalculationResult) PieceCount() int {
	n := 0
	for _, l := range r.Layers {
		for _, s := range l.Slots {
			n += len(s.Pieces)
		}
	}
	return n
}

// Project ties a load request list and its settings together for save/load.
type Project struct {
	Name     string             `json:"name"`
	Items    []LoadItem         `json:"items"`
	Settings LoadSettings       `json:"settings"`
	Result   *CalculationResult `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Items:    []LoadItem{},
		Settings: DefaultSettings(),
	}
}
