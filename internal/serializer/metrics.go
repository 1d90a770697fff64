package serializer

import "github.com/prometheus/client_golang/prometheus"

var (
	dumpsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "feedwire",
		Subsystem: "serializer",
		Name:      "dumps_total",
		Help:      "Number of activities serialized.",
	})

	loadsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "feedwire",
		Subsystem: "serializer",
		Name:      "loads_total",
		Help:      "Number of activities deserialized.",
	})

	contextDecodeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedwire",
		Subsystem: "serializer",
		Name:      "context_decodes_total",
		Help:      "Number of non-empty context blobs decoded, by stored format.",
	}, []string{"format"})

	errorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedwire",
		Subsystem: "serializer",
		Name:      "errors_total",
		Help:      "Number of serializer failures grouped by kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(dumpsCounter, loadsCounter, contextDecodeCounter, errorCounter)
}

func recordContextDecode(format blobFormat) {
	if format == formatEmpty {
		return
	}
	contextDecodeCounter.WithLabelValues(format.String()).Inc()
}

func recordError(kind string) {
	errorCounter.WithLabelValues(kind).Inc()
}
