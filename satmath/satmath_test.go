// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package satmath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSatSaturatesOnOverflow(t *testing.T) {
	require.Equal(t, int64(MaxInt64), AddSat(MaxInt64, 1))
	require.Equal(t, int64(MinInt64), AddSat(MinInt64, -1))
	require.Equal(t, int64(5), AddSat(2, 3))
}

func TestSubSatSaturatesOnOverflow(t *testing.T) {
	require.Equal(t, int64(MinInt64), SubSat(MinInt64, 1))
	require.Equal(t, int64(MaxInt64), SubSat(MaxInt64, -1))
	require.Equal(t, int64(-1), SubSat(2, 3))
}

func TestMulSatSaturatesOnOverflow(t *testing.T) {
	require.Equal(t, int64(MaxInt64), MulSat(MaxInt64, 2))
	require.Equal(t, int64(MinInt64), MulSat(MaxInt64, -2))
	require.Equal(t, int64(0), MulSat(0, MaxInt64))
	require.Equal(t, int64(6), MulSat(2, 3))
}

func TestMulShiftDivRoundRoundsToNearest(t *testing.T) {
	// 10 * (1<<0) / 4 = 2.5 -> rounds away from zero to 3
	got, ok := MulShiftDivRound(10, 1, 0, 4)
	require.True(t, ok)
	require.Equal(t, int64(3), got)

	// exact division, no rounding needed
	got, ok = MulShiftDivRound(8, 1, 0, 4)
	require.True(t, ok)
	require.Equal(t, int64(2), got)

	// shift lifts precision before dividing
	got, ok = MulShiftDivRound(1, 1, 4, 1)
	require.True(t, ok)
	require.Equal(t, int64(16), got)
}

func TestMulDivTruncTruncatesTowardZero(t *testing.T) {
	got, ok := MulDivTrunc(10, 1, 4)
	require.True(t, ok)
	require.Equal(t, int64(2), got) // 10/4 = 2.5, truncates to 2

	got, ok = MulDivTrunc(8, 1, 4)
	require.True(t, ok)
	require.Equal(t, int64(2), got)
}

func TestMulShiftDivRoundRejectsZeroDenominator(t *testing.T) {
	_, ok := MulShiftDivRound(10, 1, 0, 0)
	require.False(t, ok)
}

func TestShiftRightSatZeroOperand(t *testing.T) {
	require.Equal(t, int64(0), ShiftRightSat(0, 5, 3))
	require.Equal(t, int64(0), ShiftRightSat(100, 0, 3))
}
