// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otfifoish

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter is satisfied by [fifoish.Queue] and by every wrapper in this package.
type Counter interface {
	Count() int64
}

// CountCollector exports a queue's item count as a Prometheus gauge, read at
// scrape time.
type CountCollector struct {
	desc  *prometheus.Desc
	queue Counter
}

var _ prometheus.Collector = (*CountCollector)(nil)

// NewCountCollector creates a collector for the gauge named name. Register it
// with a [prometheus.Registerer] to export it.
func NewCountCollector(name, help string, queue Counter, constLabels prometheus.Labels) *CountCollector {
	return &CountCollector{
		desc:  prometheus.NewDesc(name, help, nil, constLabels),
		queue: queue,
	}
}

func (c *CountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *CountCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.queue.Count()))
}
