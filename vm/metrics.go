package vm

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional Prometheus instrumentation bundle, wired in via
// vm.WithMetrics (see vm.go). It is a purely additive observability
// layer: every counter/gauge update is a no-op when Metrics is nil, so
// the interpreter's hot path never branches on whether metrics are
// enabled beyond a single nil check. Grounded on C360Studio-semspec's use
// of prometheus/client_golang for service instrumentation, given an
// ambient concern (operational metrics) with no teacher precedent.
type Metrics struct {
	ScriptInits      prometheus.Counter
	ActivationDepth  prometheus.Gauge
	BroadcastPumps   prometheus.Counter
	BroadcastQueueLen prometheus.Gauge
	OpcodesExecuted  prometheus.Counter
}

// NewMetrics registers a fresh metric set on reg and returns it.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ScriptInits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avm2",
			Name:      "script_inits_total",
			Help:      "Number of Script.init invocations completed.",
		}),
		ActivationDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "avm2",
			Name:      "activation_depth",
			Help:      "Current call-stack depth (number of live Activations).",
		}),
		BroadcastPumps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avm2",
			Name:      "broadcast_pumps_total",
			Help:      "Number of broadcast-event dispatch passes run.",
		}),
		BroadcastQueueLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "avm2",
			Name:      "broadcast_listeners",
			Help:      "Number of registered broadcast listeners at last pump.",
		}),
		OpcodesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avm2",
			Name:      "opcodes_executed_total",
			Help:      "Total bytecode instructions dispatched.",
		}),
	}
	reg.MustRegister(m.ScriptInits, m.ActivationDepth, m.BroadcastPumps, m.BroadcastQueueLen, m.OpcodesExecuted)
	return m
}
