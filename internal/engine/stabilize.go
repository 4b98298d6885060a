package engine

import (
	"fmt"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// Stabilize enforces the pyramid rule in place: no layer may be narrower than
// the layer directly above it. Layers are visited from the second-from-top
// down to the base so every layer is compared against an already stabilized
// upper layer. Only TotalWidth changes; slots are left untouched and the
// widened value is not checked against the vehicle width.
//
// It returns one engineering note per widened layer.
func Stabilize(layers []model.Layer) []string {
	var notes []string
	for i := len(layers) - 2; i >= 0; i-- {
		current := &layers[i]
		above := layers[i+1]

		if above.TotalWidth > current.TotalWidth {
			diff := above.TotalWidth - current.TotalWidth
			current.TotalWidth = above.TotalWidth
			notes = append(notes, fmt.Sprintf("Level %d: base widened by %.0fcm to stabilize level %d.",
				current.Index+1, diff, above.Index+1))
		}
	}
	return notes
}
