// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"testing"

	"github.com/33cn/wager/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestStartMetrics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.False(t, StartMetrics(ctx, nil, nil))
	assert.False(t, StartMetrics(ctx, &types.Metrics{}, nil))
	assert.False(t, StartMetrics(ctx, &types.Metrics{EnableMetrics: true, DataEmitMode: "statsd"}, nil))
	assert.False(t, StartMetrics(ctx, &types.Metrics{EnableMetrics: true, DataEmitMode: "influxdb"}, nil))

	sub := map[string][]byte{"influxdb": []byte(`{"url":"http://127.0.0.1:8086","database":"wager"}`)}
	assert.True(t, StartMetrics(ctx, &types.Metrics{EnableMetrics: true, DataEmitMode: "influxdb"}, sub))
}

type testCollectors struct {
	Count  prometheus.Counter
	Gauge  prometheus.Gauge
	Name   string
	hidden prometheus.Counter
}

func TestPrometheusCollectorsFromFields(t *testing.T) {
	c := &testCollectors{
		Count:  prometheus.NewCounter(prometheus.CounterOpts{Name: "count"}),
		Gauge:  prometheus.NewGauge(prometheus.GaugeOpts{Name: "gauge"}),
		Name:   "x",
		hidden: prometheus.NewCounter(prometheus.CounterOpts{Name: "hidden"}),
	}
	cs := PrometheusCollectorsFromFields(c)
	assert.Equal(t, 2, len(cs))
	assert.Equal(t, 0, len(PrometheusCollectorsFromFields(struct{}{})))
}
