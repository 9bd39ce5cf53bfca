package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/albapepper/cricket-insights/internal/catalog"
	"github.com/albapepper/cricket-insights/internal/report"
)

// Dashboard renders the full page: every catalog entry, in order, read live.
// A failing entry shows its error inline; the page itself is still 200.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sections := report.Render(r.Context(), h.store, catalog.All(), h.logger)
	page := report.NewPage(sections, time.Since(start))

	var buf bytes.Buffer
	if err := report.WritePage(&buf, page); err != nil {
		h.logger.Error("Dashboard template failed", "error", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Dashboard rendered",
		"sections", page.Total, "failed", page.Failed,
		"duration", page.Elapsed.Round(time.Millisecond))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
