package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fiesta"

var (
	ProposalReads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "proposals",
		Name:      "reads_total",
		Help:      "getProposal calls issued.",
	})
	ProposalReadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "proposals",
		Name:      "read_failures_total",
		Help:      "getProposal calls that failed and were skipped.",
	})
	ActiveProposals = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "proposals",
		Name:      "active",
		Help:      "Active proposals found by the last reconciliation.",
	})
	TxSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tx",
		Name:      "submitted_total",
		Help:      "Transactions handed to the wallet, by contract method.",
	}, []string{"method"})
	TxFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tx",
		Name:      "failed_total",
		Help:      "Transactions that failed to build or submit, by contract method.",
	}, []string{"method"})
	IndexerSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "syncs_total",
		Help:      "Archive sync rounds, by result.",
	}, []string{"result"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
