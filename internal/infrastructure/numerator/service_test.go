package numerator

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corenumerator "facturador/internal/core/numerator"
)

func TestGetNextNumber_Sequential(t *testing.T) {
	svc := New()
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("A", 1)

	// 1. First call
	num, err := svc.GetNextNumber(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "00001-00000001", num)

	// 2. Second call
	num, err = svc.GetNextNumber(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "00001-00000002", num)
}

func TestGetNextNumber_IndependentSeries(t *testing.T) {
	svc := New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.GetNextNumber(ctx, corenumerator.DefaultConfig("A", 2))
		require.NoError(t, err)
	}

	num, err := svc.GetNextNumber(ctx, corenumerator.DefaultConfig("B", 2))
	require.NoError(t, err)
	assert.Equal(t, "00002-00000001", num)

	next, err := svc.Peek(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)
}

func TestGetNextNumber_SharedAcrossPointsOfSale(t *testing.T) {
	svc := New()
	ctx := context.Background()

	first, err := svc.GetNextNumber(ctx, corenumerator.DefaultConfig("A", 1))
	require.NoError(t, err)
	second, err := svc.GetNextNumber(ctx, corenumerator.DefaultConfig("A", 5))
	require.NoError(t, err)

	assert.Equal(t, "00001-00000001", first)
	assert.Equal(t, "00005-00000002", second)
}

func TestGetNextNumber_Concurrent_NoGapsNoReuse(t *testing.T) {
	svc := New()
	ctx := context.Background()
	const workers, perWorker = 8, 50

	var mu sync.Mutex
	var got []int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				num, err := svc.GetNextNumber(ctx, corenumerator.DefaultConfig("B", 3))
				if err != nil {
					t.Error(err)
					return
				}
				_, seq := ParseNumber(num)
				mu.Lock()
				got = append(got, seq)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, got, workers*perWorker)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i, seq := range got {
		assert.Equal(t, int64(i+1), seq)
	}
}

func TestSetNextNumber(t *testing.T) {
	svc := New()
	ctx := context.Background()

	require.NoError(t, svc.SetNextNumber(ctx, "A", 100))
	num, err := svc.GetNextNumber(ctx, corenumerator.DefaultConfig("A", 1))
	require.NoError(t, err)
	assert.Equal(t, "00001-00000100", num)

	assert.Error(t, svc.SetNextNumber(ctx, "A", 50), "rewinding must fail")
	assert.Error(t, svc.SetNextNumber(ctx, "A", 0))
}

func TestGetNextNumber_EmptySeries(t *testing.T) {
	_, err := New().GetNextNumber(context.Background(), corenumerator.Config{PointOfSale: 1})
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	pos, seq := ParseNumber("00003-00000042")
	assert.Equal(t, 3, pos)
	assert.Equal(t, int64(42), seq)

	pos, seq = ParseNumber("garbage")
	assert.Equal(t, -1, pos)
	assert.Equal(t, int64(-1), seq)
}
