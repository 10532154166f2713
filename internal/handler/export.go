package handler

import (
	"encoding/csv"
	"log/slog"
	"net/http"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// ExportTrip handles GET /trips/{tripID}/export: the trip's checklist as a
// CSV attachment, one row per task.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		respondBadRequest(w, "invalid trip id")
		return
	}

	rows, err := s.exports.Export(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="checklist.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ExportHeader()); err != nil {
		slog.Error("write export header", "error", err)
		return
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			slog.Error("write export row", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("flush export", "error", err)
	}
}
