package model

import "strings"

// Beam is a catalog entry describing one beam profile.
type Beam struct {
	ID        string  `json:"id" yaml:"id"`
	Bitola    string  `json:"bitola" yaml:"bitola"`         // Profile label, e.g. "W 200 x 15,0"
	Width     float64 `json:"width" yaml:"width"`           // Cross-section width in cm
	Height    float64 `json:"height" yaml:"height"`         // Cross-section height in cm
	Weight12m float64 `json:"weight_12m" yaml:"weight_12m"` // Weight of one 12m piece in tonnes
}

// WeightFor returns the weight of one piece of the given nominal length.
func (b Beam) WeightFor(l Length) float64 {
	if l == LengthShort {
		return b.Weight12m / 2
	}
	return b.Weight12m
}

// BeamCatalog is the read-only reference list of beam profiles.
type BeamCatalog struct {
	Beams []Beam `json:"beams" yaml:"beams"`
}

// DefaultCatalog returns the built-in W-profile catalog.
func DefaultCatalog() BeamCatalog {
	return BeamCatalog{
		Beams: []Beam{
			{ID: "w150x13", Bitola: "W 150 x 13,0", Width: 10.0, Height: 14.8, Weight12m: 0.156},
			{ID: "w150x18", Bitola: "W 150 x 18,0", Width: 10.2, Height: 15.3, Weight12m: 0.216},
			{ID: "w200x15", Bitola: "W 200 x 15,0", Width: 10.0, Height: 20.0, Weight12m: 0.180},
			{ID: "w200x22", Bitola: "W 200 x 22,5", Width: 10.2, Height: 20.6, Weight12m: 0.270},
			{ID: "w250x25", Bitola: "W 250 x 25,3", Width: 10.2, Height: 25.7, Weight12m: 0.3036},
			{ID: "w250x32", Bitola: "W 250 x 32,7", Width: 14.6, Height: 25.8, Weight12m: 0.3924},
			{ID: "w310x32", Bitola: "W 310 x 32,7", Width: 10.2, Height: 31.3, Weight12m: 0.3924},
			{ID: "w310x38", Bitola: "W 310 x 38,7", Width: 16.5, Height: 31.0, Weight12m: 0.4644},
			{ID: "w360x44", Bitola: "W 360 x 44,0", Width: 17.1, Height: 35.2, Weight12m: 0.528},
			{ID: "w410x53", Bitola: "W 410 x 53,0", Width: 17.7, Height: 40.3, Weight12m: 0.636},
			{ID: "w460x60", Bitola: "W 460 x 60,0", Width: 15.3, Height: 45.5, Weight12m: 0.720},
			{ID: "w530x72", Bitola: "W 530 x 72,0", Width: 20.7, Height: 52.4, Weight12m: 0.864},
		},
	}
}

// Lookup returns the beam with the given ID.
func (c BeamCatalog) Lookup(id string) (Beam, bool) {
	for _, b := range c.Beams {
		if b.ID == id {
			return b, true
		}
	}
	return Beam{}, false
}

// FindByBitola returns the first beam whose label matches, ignoring case and spaces.
func (c BeamCatalog) FindByBitola(bitola string) (Beam, bool) {
	want := normalizeBitola(bitola)
	for _, b := range c.Beams {
		if normalizeBitola(b.Bitola) == want {
			return b, true
		}
	}
	return Beam{}, false
}

// Resolve accepts either a catalog ID or a bitola label.
func (c BeamCatalog) Resolve(ref string) (Beam, bool) {
	if b, ok := c.Lookup(strings.ToLower(strings.TrimSpace(ref))); ok {
		return b, true
	}
	return c.FindByBitola(ref)
}

// IDs returns the catalog IDs in catalog order.
func (c BeamCatalog) IDs() []string {
	ids := make([]string, len(c.Beams))
	for i, b := range c.Beams {
		ids[i] = b.ID
	}
	return ids
}

// Merge returns a catalog with custom entries added. Entries with an ID that
// already exists replace the built-in definition in place.
func (c BeamCatalog) Merge(custom BeamCatalog) BeamCatalog {
	merged := BeamCatalog{Beams: make([]Beam, len(c.Beams))}
	copy(merged.Beams, c.Beams)

	index := make(map[string]int, len(merged.Beams))
	for i, b := range merged.Beams {
		index[b.ID] = i
	}
	for _, b := range custom.Beams {
		if i, ok := index[b.ID]; ok {
			merged.Beams[i] = b
			continue
		}
		index[b.ID] = len(merged.Beams)
		merged.Beams = append(merged.Beams, b)
	}
	return merged
}

func normalizeBitola(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, ".", ",")
}
