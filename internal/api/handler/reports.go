package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/cricket-insights/internal/api/respond"
	"github.com/albapepper/cricket-insights/internal/cache"
	"github.com/albapepper/cricket-insights/internal/catalog"
	"github.com/albapepper/cricket-insights/internal/dataset"
	"github.com/albapepper/cricket-insights/internal/report"
)

// EntryInfo describes one catalog entry.
type EntryInfo struct {
	ID      int              `json:"id"`
	Slug    string           `json:"slug"`
	Group   catalog.Group    `json:"group"`
	Title   string           `json:"title"`
	Formats []dataset.Format `json:"formats" swaggertype:"array,string"`
	Columns []string         `json:"columns"`
}

// ReportResponse is one entry's result set.
type ReportResponse struct {
	EntryInfo
	Rows     [][]any `json:"rows"`
	RowCount int     `json:"row_count"`
}

func entryInfo(e catalog.Entry) EntryInfo {
	return EntryInfo{
		ID:      e.ID,
		Slug:    e.Slug,
		Group:   e.Group,
		Title:   e.Title,
		Formats: e.Formats,
		Columns: e.Columns,
	}
}

// ListReports returns the catalog.
// @Summary List reports
// @Description Returns every catalog entry in display order.
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /reports [get]
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	all := catalog.All()
	infos := make([]EntryInfo, len(all))
	for i, e := range all {
		infos[i] = entryInfo(e)
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count":   len(infos),
		"reports": infos,
	})
}

// GetReport runs one entry and returns its rows.
// @Summary Get report
// @Description Runs a catalog entry against the dataset. The key is the entry ordinal (1-20) or its slug.
// @Tags reports
// @Produce json
// @Param key path string true "Entry ordinal or slug"
// @Success 200 {object} ReportResponse
// @Success 304
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /reports/{key} [get]
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("report:%d", e.ID)
	ttl := h.cache.TTL()
	if !h.cache.Enabled() {
		ttl = 0
	}

	if data, etag, hit := h.cache.Get(cacheKey); hit {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	table, err := report.Run(r.Context(), h.store, e)
	if err != nil {
		h.queryFailed(w, e, err)
		return
	}

	res := table.Result()
	raw, err := json.Marshal(ReportResponse{
		EntryInfo: entryInfo(e),
		Rows:      res.Rows,
		RowCount:  len(res.Rows),
	})
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "ENCODE_FAILED",
			"Could not encode report", err.Error())
		return
	}

	etag := h.cache.Set(cacheKey, raw)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetReportCSV runs one entry and returns it as CSV.
// @Summary Get report as CSV
// @Description Runs a catalog entry and returns a CSV file with a header row.
// @Tags reports
// @Produce text/csv
// @Param key path string true "Entry ordinal or slug"
// @Success 200 {string} string
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /reports/{key}/csv [get]
func (h *Handler) GetReportCSV(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}

	table, err := report.Run(r.Context(), h.store, e)
	if err != nil {
		h.queryFailed(w, e, err)
		return
	}

	filename := fmt.Sprintf("%02d-%s.csv", e.ID, e.Slug)
	if err := respond.WriteCSV(w, filename, table.Records()); err != nil {
		h.logger.Error("CSV write failed", "id", e.ID, "error", err)
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (catalog.Entry, bool) {
	key := chi.URLParam(r, "key")
	e, err := catalog.Lookup(key)
	if err != nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No report "+key)
		return catalog.Entry{}, false
	}
	return e, true
}

func (h *Handler) queryFailed(w http.ResponseWriter, e catalog.Entry, err error) {
	h.logger.Error("Report query failed", "id", e.ID, "slug", e.Slug, "error", err)
	code := "QUERY_FAILED"
	if errors.Is(err, report.ErrSchemaDrift) {
		code = "SCHEMA_DRIFT"
	}
	respond.WriteErrorDetail(w, http.StatusBadGateway, code,
		fmt.Sprintf("Report %d could not be loaded", e.ID), err.Error())
}
