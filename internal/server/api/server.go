// Package api serves the member REST contract over chi. It is the fake
// backend used by integration tests and for local development.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/memberclient/internal/logging"
	"github.com/dmitrijs2005/memberclient/internal/server/users"
	"github.com/dmitrijs2005/memberclient/internal/server/wallets"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// DepositNetwork is reported with every deposit address.
const DepositNetwork = "TRC20"

type Server struct {
	address     string
	users       *users.Service
	ledger      *wallets.Ledger
	seedDeposit float64
	logger      logging.Logger
}

func NewServer(a string, l logging.Logger, us *users.Service, ledger *wallets.Ledger, seedDeposit float64) *Server {
	return &Server{
		address:     a,
		logger:      l.With("module", "http_server"),
		users:       us,
		ledger:      ledger,
		seedDeposit: seedDeposit,
	}
}

// Routes builds the router. Paths are relative to the API base URL.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})

	r.Post("/auth/login", s.login)
	r.Post("/auth/register", s.register)
	r.Post("/auth/verify-otp", s.verifyOTP)
	r.Get("/referral/getreferralname/{id}", s.referrerName)

	r.Group(func(r chi.Router) {
		r.Use(s.accessToken)

		r.Get("/user/get-profile", s.profile)
		r.Put("/user/update-profile", s.updateProfile)
		r.Get("/user/get-dashboard", s.dashboard)
		r.Get("/user/get-wallet", s.wallet)

		r.Post("/referral/getreferrals", s.referrals)
		r.Get("/referral/get-team-business", s.teamBusiness)

		r.Get("/package/get-all-package", s.packages)
		r.Post("/package/create-package", s.createPackage)

		r.Post("/transaction/get-transaction", s.transactions)
		r.Post("/withdraw/withdraw-request", s.withdraw)

		r.Get("/deposit/get-deposit-address", s.depositAddress)
		r.Get("/deposit/check-deposit-transaction", s.checkDeposits)
		r.Post("/dev/queue-deposit", s.queueDeposit)
	})

	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
