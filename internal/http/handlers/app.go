package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/ledger"
)

// App is the handler container. Every dependency is injected explicitly;
// there is no module-level state.
type App struct {
	Cfg       *infra.Config
	Logger    zerolog.Logger
	Donors    domain.DonorRepository
	Donations domain.DonationRepository
	Expenses  domain.ExpenseRepository
	RefData   domain.ReferenceDataRepository
	Hadith    domain.HadithRepository
	Ledger    *ledger.Ledger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the API's failure shape: a JSON message body.
func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"message": msg})
}

// storeError logs the underlying failure and reports a generic server error
// without leaking internal detail.
func (a *App) storeError(w http.ResponseWriter, err error, msg string) {
	a.Logger.Error().Err(err).Msg(msg)
	a.error(w, http.StatusInternalServerError, "Internal server error")
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
