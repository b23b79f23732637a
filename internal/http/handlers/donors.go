package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

// DonorGet returns one donor's public fields by ledger ID.
func (a *App) DonorGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "donorId"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid donor id")
		return
	}
	donor, err := a.Donors.GetByDonorID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "Donor not found")
		return
	}
	if err != nil {
		a.storeError(w, err, "donor lookup failed")
		return
	}
	a.json(w, http.StatusOK, donor)
}
