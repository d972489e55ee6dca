package registry

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	variant "github.com/goliatone/go-variant"
)

// Metrics accumulates registry operation counts. Counters are atomic, so a
// single Metrics can be shared by several registries (or one registry
// behind Synchronized) and scraped while operations run. Counts measure API
// calls that completed: the implicit snapshot taken by Inject counts as an
// inject, not a snapshot.
type Metrics struct {
	injects   atomic.Uint64
	snapshots atomic.Uint64
	clears    atomic.Uint64
	reverts   atomic.Uint64
	merges    atomic.Uint64
	ejects    atomic.Uint64
}

// Injects reports completed Inject calls.
func (m *Metrics) Injects() uint64 { return m.injects.Load() }

// Snapshots reports completed Snapshot calls.
func (m *Metrics) Snapshots() uint64 { return m.snapshots.Load() }

// Clears reports ClearSnapshot calls that discarded a snapshot.
func (m *Metrics) Clears() uint64 { return m.clears.Load() }

// Reverts reports Revert calls that restored a snapshot.
func (m *Metrics) Reverts() uint64 { return m.reverts.Load() }

// Merges reports completed Merge calls.
func (m *Metrics) Merges() uint64 { return m.merges.Load() }

// Ejects reports completed Eject calls.
func (m *Metrics) Ejects() uint64 { return m.ejects.Load() }

// The adders tolerate a nil receiver so the registry never branches on
// whether metrics were configured.

func (m *Metrics) addInject() {
	if m != nil {
		m.injects.Add(1)
	}
}

func (m *Metrics) addSnapshot() {
	if m != nil {
		m.snapshots.Add(1)
	}
}

func (m *Metrics) addClear() {
	if m != nil {
		m.clears.Add(1)
	}
}

func (m *Metrics) addRevert() {
	if m != nil {
		m.reverts.Add(1)
	}
}

func (m *Metrics) addMerge() {
	if m != nil {
		m.merges.Add(1)
	}
}

func (m *Metrics) addEject() {
	if m != nil {
		m.ejects.Add(1)
	}
}

// View is the read surface the Collector scrapes. Both Registry and
// SynchronizedRegistry satisfy it; hand the Collector the synchronized
// wrapper when scrapes run concurrently with mutations.
type View[S variant.Scalar[S]] interface {
	Kinds() []string
	Len(kind string) int
	All(kind string) []Model[S]
}

// Collector exposes a registry's population and operation counters as
// Prometheus metrics. Register it with a prometheus.Registerer; metrics are
// computed at scrape time from the live view.
type Collector[S variant.Scalar[S]] struct {
	view    View[S]
	metrics *Metrics

	records    *prometheus.Desc
	snapshots  *prometheus.Desc
	operations *prometheus.Desc
}

// NewCollector builds a collector over the given view. metrics may be nil,
// in which case only population gauges are exported.
func NewCollector[S variant.Scalar[S]](view View[S], metrics *Metrics) *Collector[S] {
	return &Collector[S]{
		view:    view,
		metrics: metrics,
		records: prometheus.NewDesc(
			"variant_registry_records",
			"Records currently registered, by kind",
			[]string{"kind"}, nil,
		),
		snapshots: prometheus.NewDesc(
			"variant_registry_snapshots",
			"Registered records currently holding a snapshot, by kind",
			[]string{"kind"}, nil,
		),
		operations: prometheus.NewDesc(
			"variant_registry_operations_total",
			"Registry operations performed, by operation",
			[]string{"op"}, nil,
		),
	}
}

func (c *Collector[S]) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.records
	ch <- c.snapshots
	ch <- c.operations
}

func (c *Collector[S]) Collect(ch chan<- prometheus.Metric) {
	for _, kind := range c.view.Kinds() {
		ch <- prometheus.MustNewConstMetric(
			c.records, prometheus.GaugeValue, float64(c.view.Len(kind)), kind,
		)

		withSnapshot := 0
		for _, m := range c.view.All(kind) {
			if m.ModelState().HasSnapshot() {
				withSnapshot++
			}
		}
		ch <- prometheus.MustNewConstMetric(
			c.snapshots, prometheus.GaugeValue, float64(withSnapshot), kind,
		)
	}

	if c.metrics == nil {
		return
	}
	ops := []struct {
		name  string
		count uint64
	}{
		{"inject", c.metrics.Injects()},
		{"snapshot", c.metrics.Snapshots()},
		{"clear_snapshot", c.metrics.Clears()},
		{"revert", c.metrics.Reverts()},
		{"merge", c.metrics.Merges()},
		{"eject", c.metrics.Ejects()},
	}
	for _, op := range ops {
		ch <- prometheus.MustNewConstMetric(
			c.operations, prometheus.CounterValue, float64(op.count), op.name,
		)
	}
}
