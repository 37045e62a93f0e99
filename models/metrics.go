package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	graphLabel = "graph"
)

var (
	graphNodeCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "graph_nodes",
		Help: "The number of nodes in a graph.",
	}, []string{graphLabel})

	graphEdgeCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "graph_edges",
		Help: "The number of edges in a graph, visibility edges included.",
	}, []string{graphLabel})

	graphFaceCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "graph_faces",
		Help: "The number of faces in a graph.",
	}, []string{graphLabel})
)

type graphMetrics struct {
	nodes prometheus.Gauge
	edges prometheus.Gauge
	faces prometheus.Gauge
}

func newGraphMetrics(name string) graphMetrics {
	labels := prometheus.Labels{graphLabel: name}

	return graphMetrics{
		nodes: graphNodeCount.With(labels),
		edges: graphEdgeCount.With(labels),
		faces: graphFaceCount.With(labels),
	}
}

func (m graphMetrics) instrumentNodes(delta int) {
	m.nodes.Add(float64(delta))
}

func (m graphMetrics) instrumentEdges(delta int) {
	m.edges.Add(float64(delta))
}

func (m graphMetrics) instrumentFaces(delta int) {
	m.faces.Add(float64(delta))
}
