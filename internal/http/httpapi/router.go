package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// NewRouter wires the full HTTP surface. Record mutations and listings sit
// behind the auth cookie; token issue, logout, and the public lists do not.
func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(app.Cfg.FrontendURL))

	r.Get("/", app.Health)
	r.With(middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute)).
		Post("/jwt", app.IssueToken)
	r.Post("/logout", app.Logout)

	r.Get("/reference-data", app.ReferenceDataList)
	r.Get("/hadith", app.HadithList)
	r.Get("/hadith/all", app.HadithAll)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthCookie(app.Cfg.TokenSecret))

		r.Post("/donations", app.DonationsCreate)
		r.Get("/donations", app.DonationsList)
		r.Get("/donations/categories", app.DonationCategories)
		r.Put("/donations/{id}", app.DonationsUpdate)
		r.Delete("/donations/{id}", app.DonationsDelete)

		r.Post("/expenses", app.ExpensesCreate)
		r.Get("/expenses", app.ExpensesList)
		r.Put("/expenses/{id}", app.ExpensesUpdate)

		r.Get("/donors/{donorId}", app.DonorGet)

		r.Post("/hadith", app.HadithCreate)
		r.Put("/hadith/{id}", app.HadithUpdate)
		r.Delete("/hadith/{id}", app.HadithDelete)
	})

	return r
}
