package aggregator

import (
	"cmp"
	"slices"

	"crimeprep/internal/models"
)

// MonthTotal summarizes one (year, month) bucket.
type MonthTotal struct {
	MonthName        string
	TopNeighborhood  string
	Year             int
	Month            int
	Incidents        int
	Neighborhoods    int
	TopNeighborhoodN int
}

// Summarize totals records per year and month, sorted chronologically.
// The busiest neighborhood is reported with ties broken alphabetically.
func Summarize(records []models.CleanRecord) []MonthTotal {
	type bucket struct {
		perHood map[string]int
		total   MonthTotal
	}

	buckets := make(map[[2]int]*bucket)

	for i := range records {
		r := &records[i]
		key := [2]int{r.Year, r.Month}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				total:   MonthTotal{Year: r.Year, Month: r.Month, MonthName: r.MonthName},
				perHood: make(map[string]int),
			}
			buckets[key] = b
		}

		b.total.Incidents++
		b.perHood[r.Neighborhood]++
	}

	out := make([]MonthTotal, 0, len(buckets))

	for _, b := range buckets {
		t := b.total
		t.Neighborhoods = len(b.perHood)

		for hood, n := range b.perHood {
			if n > t.TopNeighborhoodN || (n == t.TopNeighborhoodN && hood < t.TopNeighborhood) {
				t.TopNeighborhood, t.TopNeighborhoodN = hood, n
			}
		}

		out = append(out, t)
	}

	slices.SortFunc(out, func(a, b MonthTotal) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Month, b.Month))
	})

	return out
}
