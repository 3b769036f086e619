package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareZeroBaseline(t *testing.T) {
	got := Compare(10, 0)
	require.False(t, got.Valid, "zero baseline yields no comparison, not delta=10")
	require.Zero(t, got.Delta)
	require.Zero(t, got.DeltaPct)
}

func TestCompareDirections(t *testing.T) {
	up := Compare(15, 10)
	require.True(t, up.Valid)
	require.InDelta(t, 5.0, up.Delta, 1e-9)
	require.InDelta(t, 50.0, up.DeltaPct, 1e-9)
	require.Equal(t, DirectionUp, up.Direction)

	down := Compare(8, 10)
	require.True(t, down.Valid)
	require.InDelta(t, -2.0, down.Delta, 1e-9)
	require.InDelta(t, -20.0, down.DeltaPct, 1e-9)
	require.Equal(t, DirectionDown, down.Direction)

	flat := Compare(10, 10)
	require.True(t, flat.Valid)
	require.Zero(t, flat.Delta)
	require.Equal(t, DirectionFlat, flat.Direction)
}
