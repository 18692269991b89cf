package web

import (
	"net/http"

	"tourney/config"
	"tourney/database"
	"tourney/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handler holds the service dependencies for the HTTP surface
type Handler struct {
	cfg          *config.Config
	db           *database.DB
	wallets      service.WalletService
	tournaments  service.TournamentService
	registration service.RegistrationService
	deposits     service.DepositService
	prizes       service.PrizeService
}

// New creates the HTTP handler
func New(
	cfg *config.Config,
	db *database.DB,
	wallets service.WalletService,
	tournaments service.TournamentService,
	registration service.RegistrationService,
	deposits service.DepositService,
	prizes service.PrizeService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		db:           db,
		wallets:      wallets,
		tournaments:  tournaments,
		registration: registration,
		deposits:     deposits,
		prizes:       prizes,
	}
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	auth := Auth(h.cfg.JWTSecret)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.ListTournaments)
		r.Get("/{id}", h.GetTournament)
		r.Get("/{id}/participants", h.ListParticipants)
		r.With(auth).Post("/{id}/register", h.Register)
		r.With(auth, RequireAdmin).Post("/", h.CreateTournament)
		r.With(auth, RequireAdmin).Post("/{id}/distribute", h.DistributePrizes)
	})

	router.Route("/wallet", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", h.GetWallet)
		r.Get("/transactions", h.ListTransactions)
	})

	router.Route("/deposits", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", h.SubmitDeposit)
		r.Get("/", h.ListMyDeposits)
	})

	router.Route("/admin/deposits", func(r chi.Router) {
		r.Use(auth, RequireAdmin)
		r.Get("/pending", h.ListPendingDeposits)
		r.Post("/{id}/approve", h.ApproveDeposit)
		r.Post("/{id}/reject", h.RejectDeposit)
	})

	router.Get("/health", h.Health)

	return router
}

// Health reports database connectivity
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
