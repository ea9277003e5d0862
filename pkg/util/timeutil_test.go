package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 2, 29, 23, 59, 59, 5, time.UTC)
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), DateOnly(in))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var clock Clock = FixedClock(at)
	require.True(t, at.Equal(clock.Now()))
}
