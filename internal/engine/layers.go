package engine

import (
	"math"

	"github.com/piwi3910/BeamLoad/internal/model"
)

// BuildLayers packs a sorted slot pool into layers, base first.
//
// Each pass opens an empty layer and scans the remaining pool once, front to
// back. A slot is accepted when the layer width including spacing stays within
// maxWidth and the height spread of the layer stays within shimTolerance.
// Accepted slots leave the pool; rejected slots wait for a later layer. When a
// pass accepts nothing, the first remaining slot is forced into a layer of its
// own so that the loop always terminates.
//
// The input slice is not modified.
func BuildLayers(pool []model.Slot, maxWidth, spacing, shimTolerance float64) []model.Layer {
	remaining := make([]model.Slot, len(pool))
	copy(remaining, pool)

	var layers []model.Layer
	for len(remaining) > 0 {
		var accepted []model.Slot
		var width, maxH, minH float64

		// Compact rejected slots to the front of remaining; kept <= i always.
		kept := 0
		for i := 0; i < len(remaining); i++ {
			slot := remaining[i]

			required := slot.Width
			if len(accepted) > 0 {
				required += spacing
			}

			fits := width+required <= maxWidth
			if fits && len(accepted) > 0 {
				hi := math.Max(maxH, slot.Height)
				lo := math.Min(minH, slot.Height)
				fits = hi-lo <= shimTolerance
			}

			if !fits {
				remaining[kept] = slot
				kept++
				continue
			}

			if len(accepted) == 0 {
				maxH, minH = slot.Height, slot.Height
			} else {
				maxH = math.Max(maxH, slot.Height)
				minH = math.Min(minH, slot.Height)
			}
			accepted = append(accepted, slot)
			width += required
		}
		remaining = remaining[:kept]

		if len(accepted) == 0 {
			// Only reachable when the first slot alone is wider than the vehicle.
			accepted = append(accepted, remaining[0])
			remaining = remaining[1:]
		}

		layers = append(layers, newLayer(len(layers), accepted, spacing))
	}
	return layers
}

// newLayer finalizes a layer from its slots.
func newLayer(index int, slots []model.Slot, spacing float64) model.Layer {
	layer := model.Layer{Index: index, Slots: slots, Priority: 1}
	if len(slots) == 0 {
		return layer
	}

	var itemsWidth float64
	layer.MaxHeight = slots[0].Height
	layer.MinHeight = slots[0].Height
	layer.Priority = slots[0].Priority
	for _, s := range slots {
		itemsWidth += s.Width
		layer.MaxHeight = math.Max(layer.MaxHeight, s.Height)
		layer.MinHeight = math.Min(layer.MinHeight, s.Height)
		if s.Priority < layer.Priority {
			layer.Priority = s.Priority
		}
	}
	layer.TotalWidth = itemsWidth + float64(len(slots)-1)*spacing
	layer.HeightDiff = layer.MaxHeight - layer.MinHeight
	return layer
}
