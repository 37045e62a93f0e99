package geometry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	graphLabel = "graph"
)

var (
	faceDiscoveryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "geometry_face_discovery_latency",
		Help: "The time to discover the triangular faces of a graph.",
	}, []string{
		graphLabel,
	})

	facesDiscovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geometry_faces_discovered",
		Help: "The number of faces created by face discovery.",
	}, []string{
		graphLabel,
	})

	visibilityLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "geometry_visibility_graph_latency",
		Help: "The time to build the visibility graph of a graph.",
	}, []string{
		graphLabel,
	})

	visibilityEdgesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geometry_visibility_edges_created",
		Help: "The number of edges created by visibility graph construction.",
	}, []string{
		graphLabel,
	})

	intersectionTests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geometry_intersection_tests",
		Help: "The number of segment intersection tests run by visibility graph construction.",
	}, []string{
		graphLabel,
	})
)

func instrumentFaceDiscovery(graph string, faces int, start time.Time) {
	labels := prometheus.Labels{graphLabel: graph}

	faceDiscoveryLatency.With(labels).Observe(time.Since(start).Seconds())
	facesDiscovered.With(labels).Add(float64(faces))
}

func instrumentVisibility(graph string, edges, tests int, start time.Time) {
	labels := prometheus.Labels{graphLabel: graph}

	visibilityLatency.With(labels).Observe(time.Since(start).Seconds())
	visibilityEdgesCreated.With(labels).Add(float64(edges))
	intersectionTests.With(labels).Add(float64(tests))
}
