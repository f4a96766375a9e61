// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	var form models.Form
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, r, "Handler.createForm", err)
		return
	}

	created, err := h.services.FormService.Create(r.Context(), form)
	if err != nil {
		writeError(w, r, "Handler.createForm", err)
		return
	}

	logger.FromRequest(r).Debug().Str("form_id", created.ID).Msg("form created")
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, "Handler.listForms", err)
		return
	}

	page, err := h.services.FormService.List(r.Context(), query)
	if err != nil {
		writeError(w, r, "Handler.listForms", err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.services.FormService.Get(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		writeError(w, r, "Handler.getForm", err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

func (h *Handler) updateForm(w http.ResponseWriter, r *http.Request) {
	var update models.FormUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, "Handler.updateForm", err)
		return
	}

	form, err := h.services.FormService.Update(r.Context(), chi.URLParam(r, "formID"), update)
	if err != nil {
		writeError(w, r, "Handler.updateForm", err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

// reorderBody lists the new position of each moved field.
type reorderBody struct {
	Fields []struct {
		ID    string `json:"id"`
		Order int    `json:"order"`
	} `json:"fields"`
}

func (h *Handler) reorderForm(w http.ResponseWriter, r *http.Request) {
	var body reorderBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, "Handler.reorderForm", err)
		return
	}

	orders := make(map[string]int, len(body.Fields))
	for _, f := range body.Fields {
		orders[f.ID] = f.Order
	}

	form, err := h.services.FormService.Reorder(r.Context(), chi.URLParam(r, "formID"), orders)
	if err != nil {
		writeError(w, r, "Handler.reorderForm", err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

func (h *Handler) deleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.services.FormService.Delete(r.Context(), chi.URLParam(r, "formID")); err != nil {
		writeError(w, r, "Handler.deleteForm", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
