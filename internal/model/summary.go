package model

import "sort"

// BitolaSummary aggregates the pieces of one profile across a loading plan.
type BitolaSummary struct {
	Bitola      string  `json:"bitola"`
	Pieces      int     `json:"pieces"`       // Physical beam pieces
	ShortPieces int     `json:"short_pieces"` // Pieces of LengthShort
	LongPieces  int     `json:"long_pieces"`  // Pieces of LengthLong
	Meters      float64 `json:"meters"`       // Total linear metres
	Weight      float64 `json:"weight"`       // Total weight in tonnes
}

// SummarizeByBitola builds the material list of a result, one entry per
// profile, sorted by descending weight and then by label.
func SummarizeByBitola(result CalculationResult) []BitolaSummary {
	byBitola := make(map[string]*BitolaSummary)
	for _, layer := range result.Layers {
		for _, slot := range layer.Slots {
			for _, piece := range slot.Pieces {
				s, ok := byBitola[piece.Bitola]
				if !ok {
					s = &BitolaSummary{Bitola: piece.Bitola}
					byBitola[piece.Bitola] = s
				}
				s.Pieces++
				if piece.Length == LengthShort {
					s.ShortPieces++
				} else {
					s.LongPieces++
				}
				s.Meters += float64(piece.Length)
				s.Weight += piece.Weight
			}
		}
	}

	summaries := make([]BitolaSummary, 0, len(byBitola))
	for _, s := range byBitola {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Weight != summaries[j].Weight {
			return summaries[i].Weight > summaries[j].Weight
		}
		return summaries[i].Bitola < summaries[j].Bitola
	})
	return summaries
}
