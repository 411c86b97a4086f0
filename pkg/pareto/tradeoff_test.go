package pareto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeoff(t *testing.T) {
	front := Front2D{
		{Alpha: 0, Cost: Cost2D{Length: 100, Distance: 10}},
		{Alpha: 1, Cost: Cost2D{Length: 10, Distance: 100}},
	}
	res := Tradeoff(front, Cost2D{Length: 50, Distance: 50})

	require.NotNil(t, res.ActualRatio)
	require.NotNil(t, res.OptimalRatio)
	require.NotNil(t, res.Tradeoff)
	assert.InDelta(t, 1.0, *res.ActualRatio, tol)
	assert.InDelta(t, 1.0, *res.OptimalRatio, tol)
	assert.InDelta(t, 1.0, *res.Tradeoff, tol)

	assert.Equal(t, Cost2D{Length: 10, Distance: 100}, *res.Steiner)
	assert.Equal(t, Cost2D{Length: 100, Distance: 10}, *res.Satellite)
}

func TestTradeoffGuards(t *testing.T) {
	empty := Tradeoff(nil, Cost2D{Length: 4, Distance: 2})
	require.NotNil(t, empty.ActualRatio)
	assert.InDelta(t, 2.0, *empty.ActualRatio, tol)
	assert.Nil(t, empty.OptimalRatio)
	assert.Nil(t, empty.Tradeoff)
	assert.Nil(t, empty.Steiner)

	front := Front2D{{Alpha: 0, Cost: Cost2D{Length: 10, Distance: 5}}}
	zeroDelay := Tradeoff(front, Cost2D{Length: 4, Distance: 0})
	assert.Nil(t, zeroDelay.ActualRatio)
	assert.Nil(t, zeroDelay.Tradeoff)
	require.NotNil(t, zeroDelay.OptimalRatio)
	assert.InDelta(t, 2.0, *zeroDelay.OptimalRatio, tol)
	assert.NotNil(t, zeroDelay.Steiner)

	flat := Front2D{{Alpha: 0, Cost: Cost2D{Length: 10, Distance: 0}}}
	noOpt := Tradeoff(flat, Cost2D{Length: 4, Distance: 2})
	assert.Nil(t, noOpt.OptimalRatio)
	assert.Nil(t, noOpt.Tradeoff)
	require.NotNil(t, noOpt.Satellite)

	zeroLen := Front2D{{Alpha: 0, Cost: Cost2D{Length: 0, Distance: 3}}}
	zeroOpt := Tradeoff(zeroLen, Cost2D{Length: 4, Distance: 2})
	require.NotNil(t, zeroOpt.OptimalRatio)
	assert.Nil(t, zeroOpt.Tradeoff)
}

func TestTradeoffCyclicTree(t *testing.T) {
	front := Front2D{
		{Alpha: 0, Cost: Cost2D{Length: 100, Distance: 10}},
		{Alpha: 1, Cost: Cost2D{Length: 10, Distance: 100}},
	}
	res := Tradeoff(front, Costs(cycleGraph(t), nil))
	assert.Nil(t, res.ActualRatio)
	assert.Nil(t, res.Tradeoff)
	require.NotNil(t, res.OptimalRatio)
	assert.InDelta(t, 1.0, *res.OptimalRatio, tol)

	inf := Front2D{{Alpha: 0, Cost: Cost2D{Length: math.Inf(1), Distance: math.Inf(1)}}}
	assert.Nil(t, Tradeoff(inf, Cost2D{Length: 4, Distance: 2}).OptimalRatio)
}
