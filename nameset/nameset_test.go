// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nameset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddContainsRemove(t *testing.T) {
	s := New[string](0)
	require.False(t, s.Contains("alice"))

	s.Add("alice")
	require.True(t, s.Contains("alice"))
	require.Equal(t, 1, s.Len())

	s.Remove("alice")
	require.False(t, s.Contains("alice"))
	require.Equal(t, 0, s.Len())
}

func TestAddIsIdempotent(t *testing.T) {
	s := New[string](0)
	s.Add("bob")
	s.Add("bob")
	require.Equal(t, 1, s.Len())
}

func TestSliceReturnsAllElements(t *testing.T) {
	s := New[string](0)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	require.ElementsMatch(t, []string{"a", "b", "c"}, s.Slice())
}
