package pareto

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTreesCount(t *testing.T) {
	g := yGraph(t)

	costs, err := RandomTrees(context.Background(), g)
	require.NoError(t, err)
	assert.Len(t, costs, DefaultSamples)

	costs, err = RandomTrees(context.Background(), g, WithSamples(37))
	require.NoError(t, err)
	require.Len(t, costs, 37)
	for _, c := range costs {
		assert.GreaterOrEqual(t, c.Length, 0.0)
		assert.GreaterOrEqual(t, c.Distance, 0.0)
		assert.False(t, c.IsInf())
	}
}

func TestRandomTreesTwoCriticalNodes(t *testing.T) {
	// Only the base and the far tip are critical, so every sample is the
	// single edge between them.
	costs, err := RandomTrees(context.Background(), lineGraph(t), WithSamples(20))
	require.NoError(t, err)
	for _, c := range costs {
		assert.InDelta(t, 20.0, c.Length, tol)
		assert.InDelta(t, 20.0, c.Distance, tol)
	}
}

func TestRandomTreesSeeded(t *testing.T) {
	g := yGraph(t)
	ctx := context.Background()

	a, err := RandomTrees(ctx, g, WithSamples(50), WithSeed(7), WithWorkers(1))
	require.NoError(t, err)
	b, err := RandomTrees(ctx, g, WithSamples(50), WithSeed(7), WithWorkers(6))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	r1 := rand.New(rand.NewPCG(1, 2))
	r2 := rand.New(rand.NewPCG(1, 2))
	c, err := RandomTrees(ctx, g, WithSamples(50), WithRand(r1))
	require.NoError(t, err)
	d, err := RandomTrees(ctx, g, WithSamples(50), WithRand(r2))
	require.NoError(t, err)
	assert.Equal(t, c, d)
}

func TestRandomTrees3D(t *testing.T) {
	costs, err := RandomTrees3D(context.Background(), yGraph(t), WithSamples(25), WithSeed(3))
	require.NoError(t, err)
	require.Len(t, costs, 25)
	for _, c := range costs {
		assert.GreaterOrEqual(t, c.Tortuosity, 2.0-1e-9)
	}
}

func TestRandomTreesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RandomTrees(ctx, yGraph(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCentroid(t *testing.T) {
	got := Centroid([]Cost2D{{Length: 2, Distance: 4}, {Length: 4, Distance: 8}})
	assert.Equal(t, Cost2D{Length: 3, Distance: 6}, got)
	assert.Equal(t, Cost2D{}, Centroid(nil))

	got3 := Centroid3D([]Cost3D{{1, 2, 3}, {3, 4, 5}})
	assert.Equal(t, Cost3D{2, 3, 4}, got3)
}
