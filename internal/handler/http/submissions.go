package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

const formatCSV = "csv"

func (h *Handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, "Handler.listSubmissions", err)
		return
	}

	page, err := h.services.SubmissionService.List(r.Context(), chi.URLParam(r, "formID"), query)
	if err != nil {
		writeError(w, r, "Handler.listSubmissions", err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) submissionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.SubmissionService.Stats(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		writeError(w, r, "Handler.submissionStats", err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

// exportSubmissions answers with the tabular export as JSON, or as a CSV
// attachment when ?format=csv is given.
func (h *Handler) exportSubmissions(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")

	if r.URL.Query().Get("format") != formatCSV {
		export, err := h.services.ExportService.Export(r.Context(), formID)
		if err != nil {
			writeError(w, r, "Handler.exportSubmissions", err)
			return
		}
		utils.WriteJSON(w, export, http.StatusOK)
		return
	}

	// buffered so a failure can still be reported with a proper status
	var buf bytes.Buffer
	if err := h.services.ExportService.ExportCSV(r.Context(), formID, &buf); err != nil {
		writeError(w, r, "Handler.exportSubmissions", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "form-"+formID+"-submissions.csv"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) getSubmission(w http.ResponseWriter, r *http.Request) {
	submission, err := h.services.SubmissionService.Get(r.Context(), chi.URLParam(r, "formID"), chi.URLParam(r, "submissionID"))
	if err != nil {
		writeError(w, r, "Handler.getSubmission", err)
		return
	}

	utils.WriteJSON(w, submission, http.StatusOK)
}

func (h *Handler) updateSubmission(w http.ResponseWriter, r *http.Request) {
	var update models.SubmissionUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, "Handler.updateSubmission", err)
		return
	}
	if update.Answers != nil {
		update.Answers = sanitizeAnswers(update.Answers)
	}

	submission, err := h.services.SubmissionService.Update(r.Context(), chi.URLParam(r, "formID"), chi.URLParam(r, "submissionID"), update)
	if err != nil {
		writeError(w, r, "Handler.updateSubmission", err)
		return
	}

	utils.WriteJSON(w, submission, http.StatusOK)
}

func (h *Handler) deleteSubmission(w http.ResponseWriter, r *http.Request) {
	err := h.services.SubmissionService.Delete(r.Context(), chi.URLParam(r, "formID"), chi.URLParam(r, "submissionID"))
	if err != nil {
		writeError(w, r, "Handler.deleteSubmission", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
