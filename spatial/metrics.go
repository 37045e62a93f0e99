package spatial

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	indexLabel = "index"
)

var (
	quadtreeSubdivisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadtree_subdivisions_total",
		Help: "The total number of quadtree cell subdivisions.",
	}, []string{indexLabel})

	quadtreeMerges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadtree_merges_total",
		Help: "The total number of quadtree subtrees collapsed into a leaf.",
	}, []string{indexLabel})

	quadtreeItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "quadtree_items",
		Help: "The number of items stored in a quadtree.",
	}, []string{indexLabel})
)

// indexMetrics caches the label bound collectors of one index so the hot
// insert and remove paths do not rebuild label maps.
type indexMetrics struct {
	subdivisions prometheus.Counter
	merges       prometheus.Counter
	items        prometheus.Gauge
}

func newIndexMetrics(name string) indexMetrics {
	labels := prometheus.Labels{indexLabel: name}
	return indexMetrics{
		subdivisions: quadtreeSubdivisions.With(labels),
		merges:       quadtreeMerges.With(labels),
		items:        quadtreeItems.With(labels),
	}
}

func (m indexMetrics) instrumentSubdivide() {
	m.subdivisions.Inc()
}

func (m indexMetrics) instrumentMerge() {
	m.merges.Inc()
}

func (m indexMetrics) instrumentItems(delta int) {
	m.items.Add(float64(delta))
}
