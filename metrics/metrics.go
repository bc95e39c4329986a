// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 指标上报. go-metrics 的指标定时写入 influxdb, prometheus 指标由 rpc 的 /metrics 提供
package metrics

import (
	"context"
	"reflect"
	"time"

	"github.com/33cn/wager/metrics/influxdb"
	"github.com/33cn/wager/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus"
	gometrics "github.com/rcrowley/go-metrics"
)

type influxDBPara struct {
	// 以纳秒为单位
	Duration  int64  `json:"duration,omitempty"`
	URL       string `json:"url,omitempty"`
	Database  string `json:"database,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

var (
	log = log15.New("module", "wager metrics")
)

//StartMetrics 根据配置文件相关参数启动, ctx 结束时停止上报
func StartMetrics(ctx context.Context, cfg *types.Metrics, sub map[string][]byte) bool {
	if cfg == nil || !cfg.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return false
	}

	switch cfg.DataEmitMode {
	case "influxdb":
		subcfg, ok := sub[cfg.DataEmitMode]
		if !ok {
			log.Error("nil parameter for influxdb")
			return false
		}
		var influxdbcfg influxDBPara
		types.MustDecode(subcfg, &influxdbcfg)
		if influxdbcfg.Duration <= 0 {
			influxdbcfg.Duration = int64(10 * time.Second)
		}
		log.Info("StartMetrics with influxdb", "influxdbcfg.Duration", influxdbcfg.Duration,
			"influxdbcfg.URL", influxdbcfg.URL,
			"influxdbcfg.DatabaseName,", influxdbcfg.Database,
			"influxdbcfg.Username", influxdbcfg.Username,
			"influxdbcfg.Namespace", influxdbcfg.Namespace)
		go influxdb.InfluxDBWithContext(ctx, gometrics.DefaultRegistry,
			time.Duration(influxdbcfg.Duration),
			influxdbcfg.URL,
			influxdbcfg.Database,
			influxdbcfg.Username,
			influxdbcfg.Password,
			influxdbcfg.Namespace)
		return true
	default:
		log.Error("startMetrics", "The dataEmitMode set is not supported now ", cfg.DataEmitMode)
		return false
	}
}

// Namespace prometheus 指标的前缀
var Namespace = "wager"

// Collector 提供一组 prometheus 指标
type Collector interface {
	Metrics() []prometheus.Collector
}

// PrometheusCollectorsFromFields 结构体中所有导出的 prometheus.Collector 字段
func PrometheusCollectorsFromFields(i interface{}) (cs []prometheus.Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}
		if u, ok := v.Field(i).Interface().(prometheus.Collector); ok {
			cs = append(cs, u)
		}
	}
	return cs
}
