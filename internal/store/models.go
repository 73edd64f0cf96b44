package store

type Setting struct {
	Key   string
	Value string
}

// Setting keys seeded by the first migration.
const (
	SettingDefaultStroke = "default_stroke"
	SettingDistanceUnit  = "distance_unit"
	SettingPageSize      = "page_size"
)

// practiceRow is the column shape of swimming_practices before conversion
// to a practice.Record.
type practiceRow struct {
	id        int64
	date      string
	duration  int
	distance  float64
	stroke    string
	notes     *string
	createdAt string
}
