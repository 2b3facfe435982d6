// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mana

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegenerateCapsAtMaxMana(t *testing.T) {
	bar := &Bar{CurrentMana: 0, LastUpdateTime: 0}
	Regenerate(bar, 1_000_000, RegenTime, uint32(RegenTime))
	require.Equal(t, int64(1_000_000), bar.CurrentMana)
	require.Equal(t, uint32(RegenTime), bar.LastUpdateTime)
}

func TestRegenerateIsMonotoneInNow(t *testing.T) {
	bar := &Bar{CurrentMana: 0, LastUpdateTime: 0}
	Regenerate(bar, 1_000_000, RegenTime, 100)
	first := bar.CurrentMana
	Regenerate(bar, 1_000_000, RegenTime, 200)
	require.GreaterOrEqual(t, bar.CurrentMana, first)
}

func TestRegenerateNoTimeTravel(t *testing.T) {
	bar := &Bar{CurrentMana: 500, LastUpdateTime: 1000}
	Regenerate(bar, 1_000_000, RegenTime, 500) // now < last_update_time
	require.Equal(t, int64(500), bar.CurrentMana)
	require.Equal(t, uint32(500), bar.LastUpdateTime)
}

func TestHasManaAndUseMana(t *testing.T) {
	bar := &Bar{CurrentMana: 100}
	require.True(t, HasMana(bar, 100))
	require.False(t, HasMana(bar, 101))

	UseMana(bar, 30)
	require.Equal(t, int64(70), bar.CurrentMana)

	// use_mana may go negative; caller decides if that's permitted.
	UseMana(bar, 1000)
	require.Equal(t, int64(-930), bar.CurrentMana)
}

func TestRegenerateZeroMaxManaIsNoop(t *testing.T) {
	bar := &Bar{CurrentMana: 0, LastUpdateTime: 0}
	Regenerate(bar, 0, RegenTime, 12345)
	require.Equal(t, int64(0), bar.CurrentMana)
}
