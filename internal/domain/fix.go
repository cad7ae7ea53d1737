package domain

// PositionFix is a single GPS sample delivered by the position source.
// Only the most recent fix is retained by the metering engine.
type PositionFix struct {
	Latitude  float64
	Longitude float64
	// TimestampMs is the source timestamp in Unix milliseconds.
	// Optional; zero means the source did not provide one.
	TimestampMs int64
}
