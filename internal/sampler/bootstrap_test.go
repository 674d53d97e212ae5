package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blotto-backtest/internal/model"
)

func testPool() []model.Allocation {
	return []model.Allocation{
		{10, 0, 0},
		{0, 10, 0},
		{0, 0, 10},
		{4, 3, 3},
	}
}

func TestSampleZero(t *testing.T) {
	src, err := NewSource(KindPCG, 1)
	require.NoError(t, err)
	pop, err := Sample(testPool(), 0, src)
	require.NoError(t, err)
	assert.NotNil(t, pop)
	assert.Empty(t, pop)
}

func TestSampleMembership(t *testing.T) {
	pool := testPool()
	src, err := NewSource(KindPCG, 2)
	require.NoError(t, err)
	pop, err := Sample(pool, 250, src)
	require.NoError(t, err)
	require.Len(t, pop, 250)
	for _, p := range pop {
		found := false
		for _, q := range pool {
			if p.Equal(q) {
				found = true
				break
			}
		}
		assert.True(t, found, "%v not in pool", p)
	}
}

func TestSampleReproducible(t *testing.T) {
	for _, kind := range []string{KindPCG, KindChaCha} {
		t.Run(kind, func(t *testing.T) {
			s1, err := NewSource(kind, 123)
			require.NoError(t, err)
			s2, err := NewSource(kind, 123)
			require.NoError(t, err)

			a, err := NewBootstrap(testPool(), s1).Sample(64)
			require.NoError(t, err)
			b, err := NewBootstrap(testPool(), s2).Sample(64)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}

func TestSampleErrors(t *testing.T) {
	src, err := NewSource("", 1)
	require.NoError(t, err)

	_, err = Sample(nil, 3, src)
	assert.ErrorIs(t, err, model.ErrEmptyPool)

	_, err = Sample(testPool(), -1, src)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = NewSource("mersenne", 1)
	assert.Error(t, err)
}

func TestSampleCoversPool(t *testing.T) {
	pool := testPool()
	src, err := NewSource(KindChaCha, 9)
	require.NoError(t, err)
	pop, err := Sample(pool, 2000, src)
	require.NoError(t, err)
	seen := map[string]int{}
	for _, p := range pop {
		seen[p.String()]++
	}
	assert.Len(t, seen, len(pool))
}
