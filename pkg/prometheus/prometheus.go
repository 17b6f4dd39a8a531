package prometheus

import (
	"net/http"
	"sync"

	"github.com/lyricroom/backend/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// Registry returns the process wide registry holding the go and process
// collectors plus every metric declared in common.
func Registry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		for _, counter := range common.PromCounters {
			registry.MustRegister(counter)
		}

		for _, histogram := range common.PromHistograms {
			registry.MustRegister(histogram)
		}
	})

	return registry
}

func NewHandler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
