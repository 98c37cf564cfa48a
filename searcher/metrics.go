package searcher

import (
	"time"
)

type SearchMetric struct {
	Kind      Kind
	Depth     int
	StartTime time.Time
	Duration  time.Duration
	Nodes     int64 // interior positions expanded
	Leaves    int64
	Cutoffs   int64
}

type MetricsCollector interface {
	Start(kind Kind, depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

type metricsCollector struct {
	kind      Kind
	depth     int
	startTime time.Time
	nodes     int64
	leaves    int64
	cutoffs   int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(kind Kind, depth int) {
	*m = metricsCollector{kind: kind, depth: depth, startTime: time.Now()}
}

func (m *metricsCollector) AddNode() {
	m.nodes++
}

func (m *metricsCollector) AddLeaf() {
	m.leaves++
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs++
}

func (m *metricsCollector) Complete() SearchMetric {
	return SearchMetric{
		Kind:      m.kind,
		Depth:     m.depth,
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Nodes:     m.nodes,
		Leaves:    m.leaves,
		Cutoffs:   m.cutoffs,
	}
}

type noMetricsCollector struct {
	kind  Kind
	depth int
}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(kind Kind, depth int) {
	m.kind, m.depth = kind, depth
}

func (m *noMetricsCollector) AddNode()   {}
func (m *noMetricsCollector) AddLeaf()   {}
func (m *noMetricsCollector) AddCutoff() {}

func (m *noMetricsCollector) Complete() SearchMetric {
	return SearchMetric{Kind: m.kind, Depth: m.depth}
}
