package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PGXPoolCollector exports pgxpool statistics at scrape time.
type PGXPoolCollector struct {
	pool *pgxpool.Pool

	conns    *prometheus.Desc
	acquires *prometheus.Desc
	waits    *prometheus.Desc
}

// NewPGXPoolCollector creates a collector reading stats from pool.
func NewPGXPoolCollector(pool *pgxpool.Pool) *PGXPoolCollector {
	return &PGXPoolCollector{
		pool: pool,
		conns: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "db", "pool_conns"),
			"PostgreSQL pool connections by state",
			[]string{"state"}, nil,
		),
		acquires: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "db", "pool_acquires_total"),
			"Connections acquired from the PostgreSQL pool",
			nil, nil,
		),
		waits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "db", "pool_empty_acquires_total"),
			"Acquires that had to wait for a PostgreSQL connection",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *PGXPoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.conns
	ch <- c.acquires
	ch <- c.waits
}

// Collect implements prometheus.Collector.
func (c *PGXPoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.pool.Stat()

	ch <- prometheus.MustNewConstMetric(c.conns, prometheus.GaugeValue, float64(stats.AcquiredConns()), "in_use")
	ch <- prometheus.MustNewConstMetric(c.conns, prometheus.GaugeValue, float64(stats.IdleConns()), "idle")
	ch <- prometheus.MustNewConstMetric(c.conns, prometheus.GaugeValue, float64(stats.TotalConns()), "total")
	ch <- prometheus.MustNewConstMetric(c.conns, prometheus.GaugeValue, float64(stats.MaxConns()), "max")
	ch <- prometheus.MustNewConstMetric(c.acquires, prometheus.CounterValue, float64(stats.AcquireCount()))
	ch <- prometheus.MustNewConstMetric(c.waits, prometheus.CounterValue, float64(stats.EmptyAcquireCount()))
}
