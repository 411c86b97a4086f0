package pareto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontGrid(t *testing.T) {
	g := yGraph(t)
	front, err := SweepFront(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, front, 101)

	assert.Equal(t, 0.0, front[0].Alpha)
	assert.Equal(t, 1.0, front[100].Alpha)
	assert.InDelta(t, 0.37, front[37].Alpha, 1e-12)

	sat, ok := front.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, Costs(Satellite(g), CriticalNodes(g)), sat)

	_, ok = front.Lookup(0.005)
	assert.False(t, ok)
}

func TestFrontEnds(t *testing.T) {
	g := yGraph(t)
	front, err := SweepFront(context.Background(), g, WithSteps(10))
	require.NoError(t, err)
	require.Len(t, front, 11)

	steiner, _ := front.Lookup(1)
	satellite, _ := front.Lookup(0)
	assert.Less(t, steiner.Length, satellite.Length)
	assert.LessOrEqual(t, satellite.Distance, steiner.Distance)
}

func TestFrontIdempotent(t *testing.T) {
	g := yGraph(t)
	a, err := SweepFront(context.Background(), g, WithWorkers(1))
	require.NoError(t, err)
	b, err := SweepFront(context.Background(), g, WithWorkers(8))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFrontCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SweepFront(ctx, yGraph(t))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = SweepFront3D(ctx, yGraph(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFront3D(t *testing.T) {
	g := yGraph(t)
	front, err := SweepFront3D(context.Background(), g, WithSteps(4))
	require.NoError(t, err)
	// (steps+1)(steps+2)/2 points on the simplex grid.
	require.Len(t, front, 15)

	for _, p := range front {
		assert.True(t, p.Weights.Valid(), "%+v", p.Weights)
		assert.False(t, p.Cost.IsInf())
	}
	for i := 1; i < len(front); i++ {
		prev, cur := front[i-1], front[i]
		assert.True(t, prev.Alpha < cur.Alpha || (prev.Alpha == cur.Alpha && prev.Beta < cur.Beta))
	}

	sat, ok := front.Lookup(Weights{Alpha: 0, Beta: 1})
	require.True(t, ok)
	assert.Equal(t, Costs3D(Satellite(g), CriticalNodes(g)), sat)

	again, err := SweepFront3D(context.Background(), g, WithSteps(4), WithWorkers(1))
	require.NoError(t, err)
	assert.Equal(t, front, again)
}
