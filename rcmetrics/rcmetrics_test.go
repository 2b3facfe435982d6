// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rcmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistersWithoutPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("rcengine")
	require.NotPanics(t, func() { m.Register(reg) })
}

func TestPoolLevelLabeledByKind(t *testing.T) {
	m := NewMetrics("rcengine")
	m.PoolLevel.WithLabelValues("history_bytes").Set(1000)
	m.PoolLevel.WithLabelValues("state_bytes").Set(2000)

	var out dto.Metric
	require.NoError(t, m.PoolLevel.WithLabelValues("history_bytes").Write(&out))
	require.Equal(t, float64(1000), out.GetGauge().GetValue())
}

func TestCountersIncrement(t *testing.T) {
	m := NewMetrics("rcengine")
	m.BlocksProcessed.Inc()
	m.BlocksProcessed.Inc()

	var out dto.Metric
	require.NoError(t, m.BlocksProcessed.Write(&out))
	require.Equal(t, float64(2), out.GetCounter().GetValue())
}
