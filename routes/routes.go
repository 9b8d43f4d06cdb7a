package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/Damilola-codes/lenno-sub000/controllers"
	"github.com/Damilola-codes/lenno-sub000/middleware"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "lenno-api",
	})
}

// InitRouter wires the marketplace endpoints. All mutating routes sit
// behind the JWT middleware plus per-user rate limits; listing public
// jobs is open.
func InitRouter(h *controllers.Handler) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	origins := []string{
		"http://localhost:3000", "http://localhost:8080",
		"http://127.0.0.1:3000", "http://127.0.0.1:8080",
	}
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Public reads get a generous IP budget; money movement a tight
	// per-user one.
	publicLimiter := middleware.NewIPRateLimiter(300, 5*time.Minute)
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	// Auth first: the user limiter keys off the authenticated identity.
	authed := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(fn)))
	}

	api.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// Auth (issuance is external; revocation is local)
	api.Handle("/auth/logout", authed(h.Logout)).Methods(http.MethodPost)

	// Jobs
	api.Handle("/jobs", publicLimiter.Middleware(http.HandlerFunc(h.ListJobs))).Methods(http.MethodGet)
	api.Handle("/jobs/{id:[0-9]+}", publicLimiter.Middleware(http.HandlerFunc(h.GetJob))).Methods(http.MethodGet)
	api.Handle("/jobs", authed(h.CreateJob)).Methods(http.MethodPost)

	// Proposals
	api.Handle("/jobs/{id:[0-9]+}/proposals", authed(h.SubmitProposal)).Methods(http.MethodPost)
	api.Handle("/jobs/{id:[0-9]+}/proposals", authed(h.ListProposals)).Methods(http.MethodGet)
	api.Handle("/proposals/{id:[0-9]+}/accept", authed(h.AcceptProposal)).Methods(http.MethodPost)
	api.Handle("/proposals/{id:[0-9]+}/reject", authed(h.RejectProposal)).Methods(http.MethodPost)

	// Payments (escrow + wallet channels)
	api.Handle("/payments", authed(h.CreatePayment)).Methods(http.MethodPost)
	api.Handle("/payments", authed(h.ListPayments)).Methods(http.MethodGet)
	api.Handle("/payments/{id:[0-9]+}", authed(h.GetPayment)).Methods(http.MethodGet)
	api.Handle("/payments/{id:[0-9]+}/approve", authed(h.ApprovePayment)).Methods(http.MethodPut)
	api.Handle("/payments/{id:[0-9]+}/complete", authed(h.CompletePayment)).Methods(http.MethodPut)

	// Contracts
	api.Handle("/contracts", authed(h.ListContracts)).Methods(http.MethodGet)
	api.Handle("/contracts/{id:[0-9]+}", authed(h.GetContract)).Methods(http.MethodGet)
	api.Handle("/contracts/{id:[0-9]+}/cancel", authed(h.CancelContract)).Methods(http.MethodPut)
	api.Handle("/contracts/{id:[0-9]+}", authed(h.DeleteContract)).Methods(http.MethodDelete)

	// Milestones
	api.Handle("/contracts/{id:[0-9]+}/milestones", authed(h.CreateMilestone)).Methods(http.MethodPost)
	api.Handle("/contracts/{id:[0-9]+}/milestones", authed(h.ListMilestones)).Methods(http.MethodGet)
	api.Handle("/milestones/{id:[0-9]+}/complete", authed(h.CompleteMilestone)).Methods(http.MethodPost)
	api.Handle("/milestones/{id:[0-9]+}/pay", authed(h.PayMilestone)).Methods(http.MethodPost)

	return r
}
