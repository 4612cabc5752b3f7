package aqi

import "sort"

// AggregateByLocality groups scored stations by locality and returns the
// arithmetic mean AQI plus the count of contributing stations, sorted by
// locality name. Stations with a nil overall AQI are excluded from both
// the mean and the count, so StationCount reflects scored stations only.
// Localities whose stations are all unscored are omitted entirely.
func AggregateByLocality(scores []StationScore) []LocalityAggregate {
	type bucket struct {
		state string
		sum   float64
		count int
	}

	buckets := make(map[string]*bucket)
	for _, s := range scores {
		if s.OverallAQI == nil {
			continue
		}
		b, ok := buckets[s.Locality]
		if !ok {
			b = &bucket{state: s.State}
			buckets[s.Locality] = b
		}
		b.sum += *s.OverallAQI
		b.count++
	}

	out := make([]LocalityAggregate, 0, len(buckets))
	for locality, b := range buckets {
		out = append(out, LocalityAggregate{
			Locality:     locality,
			State:        b.state,
			MeanAQI:      b.sum / float64(b.count),
			StationCount: b.count,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Locality < out[j].Locality })
	return out
}
