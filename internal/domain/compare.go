package domain

// Direction classifies a period-over-period change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Comparison is the result of comparing a metric against the prior period.
// A zero prior period yields Valid=false ("no comparison available") rather
// than a misleading infinite percentage change.
type Comparison struct {
	Valid     bool
	Delta     float64
	DeltaPct  float64
	Direction Direction
}

// Compare computes the current-vs-previous delta for one metric. Both values
// must carry the same unit; the comparator does not convert.
func Compare(current, previous float64) Comparison {
	if previous == 0 {
		return Comparison{}
	}

	delta := current - previous
	direction := DirectionFlat
	switch {
	case delta > 0:
		direction = DirectionUp
	case delta < 0:
		direction = DirectionDown
	}

	return Comparison{
		Valid:     true,
		Delta:     delta,
		DeltaPct:  delta / previous * 100,
		Direction: direction,
	}
}
