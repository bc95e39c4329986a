// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package influxdb 把 go-metrics 注册表中的指标定时写入 influxdb
package influxdb

import (
	"context"
	"time"

	client "github.com/influxdata/influxdb/client/v2"
	log15 "github.com/inconshreveable/log15"
	gometrics "github.com/rcrowley/go-metrics"
)

var log = log15.New("module", "influxdb")

type reporter struct {
	reg      gometrics.Registry
	interval time.Duration

	url       string
	database  string
	username  string
	password  string
	namespace string

	client client.Client
}

// InfluxDBWithContext 按 d 的间隔把 registry 中的指标写入 InfluxDB, ctx 结束时返回
func InfluxDBWithContext(ctx context.Context, r gometrics.Registry, d time.Duration, url, database, username, password, namespace string) {
	rep := newReporter(r, d, url, database, username, password, namespace)
	if err := rep.makeClient(); err != nil {
		log.Error("Unable to make InfluxDB client", "err", err)
		return
	}
	defer rep.client.Close()
	rep.run(ctx)
}

func newReporter(r gometrics.Registry, d time.Duration, url, database, username, password, namespace string) *reporter {
	return &reporter{
		reg:       r,
		interval:  d,
		url:       url,
		database:  database,
		username:  username,
		password:  password,
		namespace: namespace,
	}
}

func (r *reporter) makeClient() (err error) {
	r.client, err = client.NewHTTPClient(client.HTTPConfig{
		Addr:     r.url,
		Username: r.username,
		Password: r.password,
		Timeout:  10 * time.Second,
	})
	return err
}

func (r *reporter) run(ctx context.Context) {
	intervalTicker := time.NewTicker(r.interval)
	defer intervalTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-intervalTicker.C:
			if err := r.send(); err != nil {
				log.Warn("Unable to send to InfluxDB", "err", err)
			}
		}
	}
}

func (r *reporter) send() error {
	bps, err := client.NewBatchPoints(client.BatchPointsConfig{Database: r.database, Precision: "s"})
	if err != nil {
		return err
	}
	points, err := r.points(time.Now())
	if err != nil {
		return err
	}
	bps.AddPoints(points)
	return r.client.Write(bps)
}

func (r *reporter) points(now time.Time) ([]*client.Point, error) {
	var points []*client.Point
	var perr error
	r.reg.Each(func(name string, i interface{}) {
		measurement := r.namespace + name
		var fields map[string]interface{}
		switch metric := i.(type) {
		case gometrics.Counter:
			fields = map[string]interface{}{"count": metric.Count()}
		case gometrics.Gauge:
			fields = map[string]interface{}{"gauge": metric.Value()}
		case gometrics.GaugeFloat64:
			fields = map[string]interface{}{"gauge": metric.Value()}
		case gometrics.Meter:
			ms := metric.Snapshot()
			fields = map[string]interface{}{
				"count": ms.Count(),
				"m1":    ms.Rate1(),
				"m5":    ms.Rate5(),
				"m15":   ms.Rate15(),
				"mean":  ms.RateMean(),
			}
		case gometrics.Histogram:
			ms := metric.Snapshot()
			ps := ms.Percentiles([]float64{0.5, 0.95, 0.99})
			fields = map[string]interface{}{
				"count": ms.Count(),
				"max":   ms.Max(),
				"mean":  ms.Mean(),
				"min":   ms.Min(),
				"p50":   ps[0],
				"p95":   ps[1],
				"p99":   ps[2],
			}
		case gometrics.Timer:
			ms := metric.Snapshot()
			ps := ms.Percentiles([]float64{0.5, 0.95, 0.99})
			fields = map[string]interface{}{
				"count": ms.Count(),
				"max":   ms.Max(),
				"mean":  ms.Mean(),
				"min":   ms.Min(),
				"p50":   ps[0],
				"p95":   ps[1],
				"p99":   ps[2],
				"m1":    ms.Rate1(),
			}
		default:
			return
		}
		p, err := client.NewPoint(measurement, nil, fields, now)
		if err != nil {
			perr = err
			return
		}
		points = append(points, p)
	})
	return points, perr
}
