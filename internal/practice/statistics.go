package practice

import "math"

// Statistics summarises a filtered set of practices. It is computed on
// demand and never stored.
type Statistics struct {
	TotalPractices             int            `json:"total_practices"`
	TotalDistance              float64        `json:"total_distance"`
	TotalTimeMinutes           int            `json:"total_time_minutes"`
	AverageDistancePerPractice float64        `json:"average_distance_per_practice"`
	AverageTimePerPractice     float64        `json:"average_time_per_practice"`
	StrokeDistribution         map[Stroke]int `json:"stroke_distribution"`
	MostCommonStroke           *Stroke        `json:"most_common_stroke"`
}

// Aggregate computes statistics over records. The stroke distribution
// always carries every stroke, and the most common stroke is nil when there
// are no records.
func Aggregate(records []Record) Statistics {
	var counts [len(Strokes)]int
	st := Statistics{TotalPractices: len(records)}

	for _, r := range records {
		st.TotalDistance += r.TotalDistance
		st.TotalTimeMinutes += r.DurationMinutes
		if r.MainStroke.Valid() {
			counts[r.MainStroke]++
		}
	}

	if st.TotalPractices > 0 {
		n := float64(st.TotalPractices)
		st.AverageDistancePerPractice = round2(st.TotalDistance / n)
		st.AverageTimePerPractice = round2(float64(st.TotalTimeMinutes) / n)
	}

	st.StrokeDistribution = make(map[Stroke]int, len(Strokes))
	maxCount := 0
	for _, s := range Strokes {
		st.StrokeDistribution[s] = counts[s]
		if counts[s] > maxCount {
			maxCount = counts[s]
			most := s
			st.MostCommonStroke = &most
		}
	}
	return st
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
