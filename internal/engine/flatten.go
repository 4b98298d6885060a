package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/piwi3910/BeamLoad/internal/model"
)

var (
	// ErrUnknownBeam is returned when a load item references a beam ID that
	// is not in the catalog.
	ErrUnknownBeam = errors.New("unknown beam")
	// ErrUnsupportedLength is returned for items that are neither 6m nor 12m.
	ErrUnsupportedLength = errors.New("unsupported beam length")
)

// pairKey groups short pieces that may share a slot. Pieces are only paired
// within the same priority and the same profile.
type pairKey struct {
	priority int
	beamID   string
}

// FlattenSlots converts load items into placeable slots.
//
// Long items yield one slot per piece. Short items are grouped by priority
// and beam, and every two pieces of a group share one paired slot; an odd
// leftover gets a slot of its own at half weight. All slots keep the full
// beam footprint. Long slots come first in input order, followed by the short
// groups sorted by priority and beam ID.
func FlattenSlots(items []model.LoadItem, catalog model.BeamCatalog) ([]model.Slot, error) {
	var slots []model.Slot

	shortQty := make(map[pairKey]int)
	var keys []pairKey

	for _, item := range items {
		beam, ok := catalog.Lookup(item.BeamID)
		if !ok {
			return nil, fmt.Errorf("item %s: %w %q", item.ID, ErrUnknownBeam, item.BeamID)
		}

		switch item.Length {
		case model.LengthLong:
			for i := 0; i < item.Quantity; i++ {
				slots = append(slots, longSlot(beam, item.Priority))
			}
		case model.LengthShort:
			if item.Quantity <= 0 {
				continue
			}
			key := pairKey{priority: item.Priority, beamID: beam.ID}
			if _, seen := shortQty[key]; !seen {
				keys = append(keys, key)
			}
			shortQty[key] += item.Quantity
		default:
			return nil, fmt.Errorf("item %s: %w %s", item.ID, ErrUnsupportedLength, item.Length)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].priority != keys[j].priority {
			return keys[i].priority < keys[j].priority
		}
		return keys[i].beamID < keys[j].beamID
	})

	for _, key := range keys {
		beam, _ := catalog.Lookup(key.beamID)
		qty := shortQty[key]
		for ; qty >= 2; qty -= 2 {
			slots = append(slots, pairedSlot(beam, key.priority))
		}
		if qty == 1 {
			slots = append(slots, singleShortSlot(beam, key.priority))
		}
	}

	return slots, nil
}

// SortPool orders slots so that larger priority values are consumed first.
// Equal priorities keep their flattened order.
func SortPool(pool []model.Slot) {
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Priority > pool[j].Priority
	})
}

func longSlot(beam model.Beam, priority int) model.Slot {
	return model.Slot{
		Width:    beam.Width,
		Height:   beam.Height,
		Weight:   beam.Weight12m,
		Priority: priority,
		Pieces: []model.BeamPiece{
			{Bitola: beam.Bitola, Length: model.LengthLong, Weight: beam.Weight12m},
		},
	}
}

func pairedSlot(beam model.Beam, priority int) model.Slot {
	half := beam.WeightFor(model.LengthShort)
	return model.Slot{
		Width:    beam.Width,
		Height:   beam.Height,
		Weight:   beam.Weight12m,
		Priority: priority,
		Paired:   true,
		Pieces: []model.BeamPiece{
			{Bitola: beam.Bitola, Length: model.LengthShort, Weight: half},
			{Bitola: beam.Bitola, Length: model.LengthShort, Weight: half},
		},
	}
}

// singleShortSlot still occupies a full 12m footprint.
func singleShortSlot(beam model.Beam, priority int) model.Slot {
	half := beam.WeightFor(model.LengthShort)
	return model.Slot{
		Width:    beam.Width,
		Height:   beam.Height,
		Weight:   half,
		Priority: priority,
		Pieces: []model.BeamPiece{
			{Bitola: beam.Bitola, Length: model.LengthShort, Weight: half},
		},
	}
}
