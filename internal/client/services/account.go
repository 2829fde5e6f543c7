package services

import (
	"context"
	"encoding/json"
	"math"
	"net/http"

	"github.com/dmitrijs2005/memberclient/internal/client/client"
	"github.com/dmitrijs2005/memberclient/internal/client/models"
)

// Withdrawal limits in USDT.
const (
	MinWithdrawal = 10
	MaxWithdrawal = 1000
)

// AccountService covers the member's own data. Every call needs a session;
// a missing or rejected one surfaces as client.ErrAuthExpired.
type AccountService interface {
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, u models.ProfileUpdate) (string, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Wallet(ctx context.Context) (*models.Wallet, error)
	Referrals(ctx context.Context, depthLimit int) ([]models.Referral, error)
	TeamBusiness(ctx context.Context) (*models.TeamBusiness, error)
	Packages(ctx context.Context) ([]models.Package, error)
	BuyPackage(ctx context.Context, amount float64) (string, error)
	Transactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error)
	Withdraw(ctx context.Context, amount float64) (string, error)
	DepositAddress(ctx context.Context) (*models.DepositAddress, error)
	RefreshDeposit(ctx context.Context) (string, error)
}

type accountService struct {
	client client.Doer
}

// NewAccountService constructs an AccountService sending through c,
// normally the AuthClient.
func NewAccountService(c client.Doer) AccountService {
	return &accountService{client: c}
}

func (s *accountService) get(ctx context.Context, path string, v any, required bool) error {
	body, err := s.client.Do(ctx, client.Request{Method: http.MethodGet, Path: path, Authenticated: true})
	if err != nil {
		return err
	}
	return client.DecodeData(body, v, required)
}

// send issues a write and returns the server's message, or def when it
// has none.
func (s *accountService) send(ctx context.Context, method, path string, payload any, def string) (string, error) {
	body, err := s.client.Do(ctx, client.Request{Method: method, Path: path, Body: payload, Authenticated: true})
	if err != nil {
		return "", err
	}
	env, err := client.DecodeEnvelope(body)
	if err != nil {
		return "", err
	}
	if env.Message == "" {
		return def, nil
	}
	return env.Message, nil
}

func (s *accountService) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := s.get(ctx, "/user/get-profile", &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, u models.ProfileUpdate) (string, error) {
	err := Apply(
		Rule{
			Check: func() bool { return u.FullName != "" || u.Phone != "" || u.WithdrawalAddress != "" },
			Error: ValidationError{Field: "form", Message: "Nothing to update"},
		},
		Rule{
			Check: func() bool { return u.Phone == "" || phonePattern.MatchString(u.Phone) },
			Error: ValidationError{Field: "phone", Message: "Phone number must be exactly 10 digits!"},
		},
	)
	if err != nil {
		return "", err
	}
	return s.send(ctx, http.MethodPut, "/user/update-profile", u, "Profile updated")
}

func (s *accountService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	if err := s.get(ctx, "/user/get-dashboard", &d, true); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *accountService) Wallet(ctx context.Context) (*models.Wallet, error) {
	var w models.Wallet
	if err := s.get(ctx, "/user/get-wallet", &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *accountService) Referrals(ctx context.Context, depthLimit int) ([]models.Referral, error) {
	if depthLimit < 1 {
		return nil, ValidationErrors{{Field: "depthLimit", Message: "Depth must be a positive number"}}
	}

	body, err := s.client.Do(ctx, client.Request{
		Method:        http.MethodPost,
		Path:          "/referral/getreferrals",
		Body:          map[string]int{"depthLimit": depthLimit},
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	var out []models.Referral
	if err := client.DecodeData(body, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *accountService) TeamBusiness(ctx context.Context) (*models.TeamBusiness, error) {
	var tb models.TeamBusiness
	if err := s.get(ctx, "/referral/get-team-business", &tb, false); err != nil {
		return nil, err
	}
	return &tb, nil
}

func (s *accountService) Packages(ctx context.Context) ([]models.Package, error) {
	var out []models.Package
	if err := s.get(ctx, "/package/get-all-package", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// BuyPackage purchases a package of amount USDT from the deposit wallet.
// The balance is read first so an unaffordable purchase is never sent.
func (s *accountService) BuyPackage(ctx context.Context, amount float64) (string, error) {
	if !validAmount(amount) {
		return "", ValidationErrors{{Field: "packageAmount", Message: "Please select a package amount"}}
	}

	w, err := s.Wallet(ctx)
	if err != nil {
		return "", err
	}
	if amount > w.DepositBalance {
		return "", ValidationErrors{{Field: "packageAmount", Message: "Selected package amount exceeds your deposit balance"}}
	}

	return s.send(ctx, http.MethodPost, "/package/create-package",
		map[string]float64{"packageAmount": amount}, "Package purchased")
}

func (s *accountService) Transactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	body, err := s.client.Do(ctx, client.Request{
		Method:        http.MethodPost,
		Path:          "/transaction/get-transaction",
		Body:          f,
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	var out []models.Transaction
	if err := client.DecodeData(body, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Withdraw requests a USDT payout. Limits and the USDT balance are checked
// before the request is sent.
func (s *accountService) Withdraw(ctx context.Context, amount float64) (string, error) {
	err := ApplyFirst(
		Rule{
			Check: func() bool { return validAmount(amount) },
			Error: ValidationError{Field: "amount", Message: "Enter a valid amount"},
		},
		Rule{
			Check: func() bool { return amount >= MinWithdrawal },
			Error: ValidationError{Field: "amount", Message: "Minimum withdrawal amount is 10 USDT"},
		},
		Rule{
			Check: func() bool { return amount <= MaxWithdrawal },
			Error: ValidationError{Field: "amount", Message: "Maximum withdrawal amount is 1000 USDT"},
		},
	)
	if err != nil {
		return "", err
	}

	w, err := s.Wallet(ctx)
	if err != nil {
		return "", err
	}
	if amount > w.USDTBalance {
		return "", ValidationErrors{{Field: "amount", Message: "Amount exceeds balance"}}
	}

	return s.send(ctx, http.MethodPost, "/withdraw/withdraw-request",
		map[string]float64{"amount": amount}, "Withdrawal request submitted")
}

func (s *accountService) DepositAddress(ctx context.Context) (*models.DepositAddress, error) {
	var a models.DepositAddress
	if err := s.get(ctx, "/deposit/get-deposit-address", &a, true); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *accountService) RefreshDeposit(ctx context.Context) (string, error) {
	return s.send(ctx, http.MethodGet, "/deposit/check-deposit-transaction", nil, "Deposit wallet refreshed")
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// decodeJSON parses a response that is not wrapped in an envelope.
func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &client.Error{Kind: client.KindServer, Message: client.MsgBadResponse, Err: err}
	}
	return nil
}
