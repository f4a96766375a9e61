package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

func (h *Handler) getPublicForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.services.FormService.GetPublic(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		writeError(w, r, "Handler.getPublicForm", err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

// submitResponse is returned for an accepted submission.
type submitResponse struct {
	Message    string            `json:"message,omitempty"`
	Submission models.Submission `json:"submission"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	request, release, err := h.readSubmission(r, chi.URLParam(r, "formID"))
	if err != nil {
		writeError(w, r, "Handler.submit", err)
		return
	}
	defer release()

	submission, err := h.services.SubmissionService.Submit(r.Context(), request)
	if err != nil {
		writeError(w, r, "Handler.submit", err)
		return
	}

	logger.FromRequest(r).Info().
		Str("form_id", submission.FormID).
		Str("submission_id", submission.ID).
		Int("uploads", len(request.Uploads)).
		Msg("submission accepted")

	utils.WriteJSON(w, submitResponse{Message: "Submission received", Submission: submission}, http.StatusCreated)
}
