// Package metrics records world generation statistics in a prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the generation metrics of one process.
type Recorder struct {
	registry *prometheus.Registry

	stageSeconds *prometheus.GaugeVec
	voxels       *prometheus.GaugeVec
	rays         prometheus.Gauge
	raysCast     prometheus.Counter
	raysEscaped  prometheus.Counter
	vertices     prometheus.Gauge
	meshBytes    prometheus.Gauge
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		stageSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stone",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each generation stage.",
		}, []string{"stage"}),
		voxels: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stone",
			Name:      "voxels",
			Help:      "Voxel counts by class.",
		}, []string{"class"}),
		rays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stone",
			Name:      "occlusion_rays",
			Help:      "Sample rays per candidate voxel.",
		}),
		raysCast: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stone",
			Name:      "occlusion_rays_cast_total",
			Help:      "Rays marched across all candidates.",
		}),
		raysEscaped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stone",
			Name:      "occlusion_rays_escaped_total",
			Help:      "Rays that reached the end of their path unobstructed.",
		}),
		vertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stone",
			Name:      "mesh_vertices",
			Help:      "Vertices in the generated mesh.",
		}),
		meshBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stone",
			Name:      "mesh_bytes",
			Help:      "Size of the vertex buffer.",
		}),
	}
	r.registry.MustRegister(
		r.stageSeconds, r.voxels, r.rays, r.raysCast, r.raysEscaped, r.vertices, r.meshBytes,
	)
	return r
}

// ObserveStage records how long a stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageSeconds.WithLabelValues(stage).Set(d.Seconds())
}

// SetVoxels records the grid composition.
func (r *Recorder) SetVoxels(total, solid, candidates int) {
	r.voxels.WithLabelValues("total").Set(float64(total))
	r.voxels.WithLabelValues("solid").Set(float64(solid))
	r.voxels.WithLabelValues("candidate").Set(float64(candidates))
}

// AddOcclusion records one occlusion pass.
func (r *Recorder) AddOcclusion(rays int, cast, escaped int64) {
	r.rays.Set(float64(rays))
	r.raysCast.Add(float64(cast))
	r.raysEscaped.Add(float64(escaped))
}

// SetMesh records the mesh size.
func (r *Recorder) SetMesh(vertices, bytes int) {
	r.vertices.Set(float64(vertices))
	r.meshBytes.Set(float64(bytes))
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes the metrics in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
