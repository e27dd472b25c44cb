package api

import (
	"log"
	"net/http"

	"github.com/fikaregister/fika-api/internal/stats"
)

// StatsHandler exposes the runtime and database statistics collector
type StatsHandler struct {
	collector *stats.Collector
}

func NewStatsHandler(collector *stats.Collector) *StatsHandler {
	return &StatsHandler{collector: collector}
}

// GetStats handles GET /api/v1/stats. Collection failures are never the
// caller's fault, so anything short of a full snapshot is a 500.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.collector.Collect(r.Context())
	if err != nil {
		log.Printf("Error collecting statistics: %v", err)
		http.Error(w, "failed to collect statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
