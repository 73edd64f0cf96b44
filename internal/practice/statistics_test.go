package practice

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(stroke Stroke, minutes int, distance float64) Record {
	return Record{
		Date:            time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: minutes,
		TotalDistance:   distance,
		MainStroke:      stroke,
	}
}

func TestAggregateEmpty(t *testing.T) {
	st := Aggregate(nil)

	assert.Equal(t, 0, st.TotalPractices)
	assert.Equal(t, 0.0, st.TotalDistance)
	assert.Equal(t, 0, st.TotalTimeMinutes)
	assert.Equal(t, 0.0, st.AverageDistancePerPractice)
	assert.Equal(t, 0.0, st.AverageTimePerPractice)
	assert.Nil(t, st.MostCommonStroke)
	require.Len(t, st.StrokeDistribution, len(Strokes))
	for _, s := range Strokes {
		assert.Equal(t, 0, st.StrokeDistribution[s], s.String())
	}
}

func TestAggregateTotals(t *testing.T) {
	st := Aggregate([]Record{
		rec(Freestyle, 60, 2000),
		rec(Breaststroke, 45, 1500),
	})

	assert.Equal(t, 2, st.TotalPractices)
	assert.Equal(t, 3500.0, st.TotalDistance)
	assert.Equal(t, 105, st.TotalTimeMinutes)
	assert.Equal(t, 1750.0, st.AverageDistancePerPractice)
	assert.Equal(t, 52.5, st.AverageTimePerPractice)
}

func TestAggregateTieFavoursDeclaredOrder(t *testing.T) {
	st := Aggregate([]Record{
		rec(Butterfly, 30, 800),
		rec(Breaststroke, 45, 1500),
		rec(Butterfly, 30, 800),
		rec(Breaststroke, 45, 1500),
	})
	require.NotNil(t, st.MostCommonStroke)
	assert.Equal(t, Breaststroke, *st.MostCommonStroke)

	st = Aggregate([]Record{rec(Breaststroke, 45, 1500), rec(Freestyle, 60, 2000)})
	require.NotNil(t, st.MostCommonStroke)
	assert.Equal(t, Freestyle, *st.MostCommonStroke)
}

func TestAggregateMostCommon(t *testing.T) {
	st := Aggregate([]Record{
		rec(Freestyle, 60, 2000),
		rec(IM, 30, 1000),
		rec(IM, 30, 1000),
	})
	require.NotNil(t, st.MostCommonStroke)
	assert.Equal(t, IM, *st.MostCommonStroke)
	assert.Equal(t, 2, st.StrokeDistribution[IM])
	assert.Equal(t, 1, st.StrokeDistribution[Freestyle])
}

func TestAggregateDistributionSumsToTotal(t *testing.T) {
	var records []Record
	for i := 0; i < 23; i++ {
		records = append(records, rec(Strokes[i%len(Strokes)], 10+i, float64(100*(i+1))))
	}
	st := Aggregate(records)

	sum := 0
	for _, n := range st.StrokeDistribution {
		sum += n
	}
	assert.Equal(t, st.TotalPractices, sum)
}

func TestAggregateRoundsAverages(t *testing.T) {
	st := Aggregate([]Record{
		rec(Freestyle, 10, 100),
		rec(Freestyle, 10, 100),
		rec(Freestyle, 11, 101),
	})
	// 301/3 = 100.333..., 31/3 = 10.333...
	assert.Equal(t, 100.33, st.AverageDistancePerPractice)
	assert.Equal(t, 10.33, st.AverageTimePerPractice)

	st = Aggregate([]Record{rec(Freestyle, 1, 1), rec(Freestyle, 1, 1), rec(Freestyle, 2, 1)})
	// 4/3 = 1.333..., rounds down; 3/3 = 1
	assert.Equal(t, 1.33, st.AverageTimePerPractice)
	assert.Equal(t, 1.0, st.AverageDistancePerPractice)

	st = Aggregate([]Record{rec(Freestyle, 2, 2), rec(Freestyle, 1, 1), rec(Freestyle, 2, 2)})
	// 5/3 = 1.666..., rounds up
	assert.Equal(t, 1.67, st.AverageTimePerPractice)
}

func TestStatisticsJSON(t *testing.T) {
	st := Aggregate([]Record{rec(Backstroke, 40, 1200)})
	data, err := json.Marshal(st)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Backstroke", got["most_common_stroke"])
	dist, ok := got["stroke_distribution"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, dist, 5)
	assert.Equal(t, 1.0, dist["Backstroke"])
	assert.Equal(t, 0.0, dist["IM"])

	data, err = json.Marshal(Aggregate(nil))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Nil(t, got["most_common_stroke"])
}
