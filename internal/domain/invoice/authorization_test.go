package invoice

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_CodeRangeBoundaries(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	low := NewIssuerWithSource(DefaultAuthValidity, func(n int64) int64 { return 0 })
	assert.Equal(t, "10000000000000", low.Issue(now).Code)

	high := NewIssuerWithSource(DefaultAuthValidity, func(n int64) int64 { return n - 1 })
	assert.Equal(t, "99999999999999", high.Issue(now).Code)
}

func TestIssue_RandomCodesAreFourteenDigits(t *testing.T) {
	issuer := NewIssuer(DefaultAuthValidity)
	now := time.Now()

	for i := 0; i < 200; i++ {
		code := issuer.Issue(now).Code
		require.Len(t, code, 14)
		v, err := strconv.ParseInt(code, 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, AuthCodeMin)
		assert.LessOrEqual(t, v, AuthCodeMax)
	}
}

func TestIssue_ExpiresTenDaysLater(t *testing.T) {
	now := time.Date(2025, 2, 25, 18, 30, 0, 0, time.UTC)
	auth := NewIssuer(0).Issue(now)

	assert.Equal(t, now, auth.IssuedAt)
	assert.Equal(t, now.Add(240*time.Hour), auth.ExpiresAt)
	assert.True(t, auth.ExpiresAt.After(auth.IssuedAt))
}
