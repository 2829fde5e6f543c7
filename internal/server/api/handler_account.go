package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/dmitrijs2005/memberclient/internal/server/wallets"
)

// teamDepth bounds the downline walk of team-wide aggregates.
const teamDepth = 100

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// ledgerError maps ledger failures to client errors.
func (s *Server) ledgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, wallets.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "Insufficient balance")
	case errors.Is(err, wallets.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "Invalid amount")
	case errors.Is(err, wallets.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "Wallet not found")
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), userID(r.Context()))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeData(w, models.Profile{
		UserID:          user.ID,
		FullName:        user.FullName,
		Phone:           user.Phone,
		Email:           user.Email,
		WithdrawAddress: user.WithdrawAddress,
	})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), userID(r.Context()), req.FullName, req.Phone, req.WithdrawalAddress)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Profile updated successfully", models.Profile{
		UserID:          user.ID,
		FullName:        user.FullName,
		Phone:           user.Phone,
		Email:           user.Email,
		WithdrawAddress: user.WithdrawAddress,
	})
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	id := userID(r.Context())
	sum, err := s.ledger.Summary(id)
	if err != nil {
		s.ledgerError(w, r, err)
		return
	}

	direct, err := s.users.Referrals(r.Context(), id, 1)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	active := 0
	for _, ref := range direct {
		if s.investment(ref.User.ID) > 0 {
			active++
		}
	}

	writeData(w, models.Dashboard{
		TotalInvestment:   sum.TotalInvestment,
		USDTBalance:       sum.USDTBalance,
		DepositBalance:    sum.DepositBalance,
		DirectTeamCount:   len(direct),
		DirectActiveTeam:  active,
		TotalIncomeEarned: sum.TotalIncomeEarned,
		USDTWithdrawTotal: sum.USDTWithdrawTotal,
	})
}

func (s *Server) investment(userID string) float64 {
	sum, err := s.ledger.Summary(userID)
	if err != nil {
		return 0
	}
	return sum.TotalInvestment
}

func (s *Server) wallet(w http.ResponseWriter, r *http.Request) {
	sum, err := s.ledger.Summary(userID(r.Context()))
	if err != nil {
		s.ledgerError(w, r, err)
		return
	}
	writeData(w, models.Wallet{USDTBalance: sum.USDTBalance, DepositBalance: sum.DepositBalance})
}

func (s *Server) referrals(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DepthLimit int `json:"depthLimit"`
	}
	if !decode(r, &req) || req.DepthLimit < 1 {
		writeError(w, http.StatusBadRequest, "depthLimit must be a positive number")
		return
	}

	refs, err := s.users.Referrals(r.Context(), userID(r.Context()), req.DepthLimit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]models.Referral, 0, len(refs))
	for _, ref := range refs {
		out = append(out, models.Referral{
			UserID:           ref.User.ID,
			Name:             ref.User.FullName,
			Referrer:         ref.User.Referrer,
			RegistrationDate: ref.User.CreatedAt,
			InvestmentAmount: s.investment(ref.User.ID),
			Level:            ref.Level,
		})
	}
	writeData(w, out)
}

func (s *Server) teamBusiness(w http.ResponseWriter, r *http.Request) {
	refs, err := s.users.Referrals(r.Context(), userID(r.Context()), teamDepth)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	var total float64
	for _, ref := range refs {
		total += s.investment(ref.User.ID)
	}
	writeData(w, models.TeamBusiness{TotalBusiness: total})
}

func (s *Server) packages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.ledger.Packages(userID(r.Context()))
	if err != nil {
		s.ledgerError(w, r, err)
		return
	}
	out := make([]models.Package, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, models.Package{PackageAmount: p.Amount, StartDate: p.StartDate, Status: p.Status})
	}
	writeData(w, out)
}

func (s *Server) createPackage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PackageAmount float64 `json:"packageAmount"`
	}
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.ledger.BuyPackage(userID(r.Context()), req.PackageAmount); err != nil {
		s.ledgerError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Package purchased successfully", nil)
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionFilter
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txs, err := s.ledger.Transactions(userID(r.Context()), wallets.Filter{
		Remark: req.TransactionRemark,
		Type:   req.Type,
		Wallet: req.WalletName,
	})
	if err != nil {
		s.ledgerError(w, r, err)
		return
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, models.Transaction{
			CreditedAmount:    t.Credited,
			DebitedAmount:     t.Debited,
			TransactionRemark: t.Remark,
			Type:              t.Type,
			WalletName:        t.Wallet,
			Status:            t.Status,
			ToAddress:         t.ToAddress,
			CreatedAt:         t.CreatedAt,
		})
	}
	writeData(w, out)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := userID(r.Context())
	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if user.WithdrawAddress == "" {
		writeError(w, http.StatusBadRequest, "Withdrawal address is not set")
		return
	}

	if err := s.ledger.Withdraw(id, req.Amount, user.WithdrawAddress); err != nil {
		s.ledgerError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Withdrawal request submitted", nil)
}

func (s *Server) depositAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := s.ledger.DepositAddress(userID(r.Context()))
	if err != nil {
		s.ledgerError(w, r, err)
		return
	}
	writeData(w, models.DepositAddress{Address: addr, Network: DepositNetwork})
}

func (s *Server) checkDeposits(w http.ResponseWriter, r *http.Request) {
	n, total, err := s.ledger.CheckDeposits(userID(r.Context()))
	if err != nil {
		s.ledgerError(w, r, err)
		return
	}
	if n == 0 {
		writeMessage(w, http.StatusOK, "No new deposits", nil)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("%d deposit(s) credited: %.2f USDT", n, total), nil)
}

func (s *Server) queueDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.ledger.QueueDeposit(userID(r.Context()), req.Amount); err != nil {
		s.ledgerError(w, r, err)
		return
	}
	writeMessage(w, http.StatusAccepted, "Deposit queued", nil)
}
