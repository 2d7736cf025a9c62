package models

// Point is the per-incident projection emitted in point mode.
// Field order is the JSON key order the map front end was written against.
type Point struct {
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Neighborhood string   `json:"neighborhood"`
	Category     string   `json:"category"`
	Type         string   `json:"type"`
	Severity     Severity `json:"severity,omitempty"`
}

// NeighborhoodCounts maps a canonical neighborhood name to its incident count.
type NeighborhoodCounts map[string]int

// Document is the output structure: year -> zero-padded month -> leaf.
// Leaves are NeighborhoodCounts in count mode and []Point in point mode.
type Document map[string]map[string]any

// Set stores a leaf, creating the year entry on first use.
func (d Document) Set(year, month string, leaf any) {
	months, ok := d[year]
	if !ok {
		months = make(map[string]any)
		d[year] = months
	}

	months[month] = leaf
}

// Get returns the leaf stored under year and month.
func (d Document) Get(year, month string) (any, bool) {
	months, ok := d[year]
	if !ok {
		return nil, false
	}

	leaf, ok := months[month]

	return leaf, ok
}
