package internal

import (
	"expvar"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_CountFallback(t *testing.T) {
	fallbacks := stats.Get("fallbacks").(*expvar.Map)

	before := int64(0)
	if v, ok := fallbacks.Get("followers").(*expvar.Int); ok {
		before = v.Value()
	}

	countFallback("followers")

	v, ok := fallbacks.Get("followers").(*expvar.Int)
	require.True(t, ok)
	assert.Equal(t, before+1, v.Value())

	last, err := time.Parse(time.RFC3339, stats.Get("last_fallback").String())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), last, 2*time.Second)
}
