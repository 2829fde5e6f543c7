// Package wallets is the in-memory ledger of the fake backend: the USDT and
// deposit wallets of every member, their packages and transactions.
package wallets

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	WalletUSDT    = "USDT"
	WalletDeposit = "DEPOSIT"

	TypeCredit = "credit"
	TypeDebit  = "debit"

	MinWithdrawal = 10
	MaxWithdrawal = 1000
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInvalidAmount     = errors.New("invalid amount")
)

type Package struct {
	Amount    float64
	StartDate time.Time
	Status    string
}

type Transaction struct {
	Credited  float64
	Debited   float64
	Remark    string
	Type      string
	Wallet    string
	Status    string
	ToAddress string
	CreatedAt time.Time
}

// Filter selects transactions; empty fields match everything.
type Filter struct {
	Remark string
	Type   string
	Wallet string
}

func (f Filter) match(t Transaction) bool {
	return (f.Remark == "" || strings.EqualFold(f.Remark, t.Remark)) &&
		(f.Type == "" || strings.EqualFold(f.Type, t.Type)) &&
		(f.Wallet == "" || strings.EqualFold(f.Wallet, t.Wallet))
}

// Summary aggregates an account for the dashboard.
type Summary struct {
	USDTBalance       float64
	DepositBalance    float64
	TotalInvestment   float64
	TotalIncomeEarned float64
	USDTWithdrawTotal float64
}

type account struct {
	usdt     float64
	deposit  float64
	packages []Package
	txs      []Transaction
	address  string
	pending  []float64
}

type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*account
	now      func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[string]*account), now: time.Now}
}

// Open creates the wallets of userID and credits initialDeposit to the
// deposit wallet. Opening an existing account is a no-op.
func (l *Ledger) Open(userID string, initialDeposit float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[userID]; ok {
		return
	}
	a := &account{address: "T" + strings.ReplaceAll(uuid.NewString(), "-", "")}
	l.accounts[userID] = a
	if initialDeposit > 0 {
		l.credit(a, WalletDeposit, initialDeposit, "deposit")
	}
}

func (l *Ledger) get(userID string) (*account, error) {
	a, ok := l.accounts[userID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

func (l *Ledger) credit(a *account, wallet string, amount float64, remark string) {
	switch wallet {
	case WalletUSDT:
		a.usdt += amount
	default:
		a.deposit += amount
	}
	a.txs = append(a.txs, Transaction{
		Credited:  amount,
		Remark:    remark,
		Type:      TypeCredit,
		Wallet:    wallet,
		Status:    "completed",
		CreatedAt: l.now().UTC(),
	})
}

// Credit adds amount to one wallet of userID.
func (l *Ledger) Credit(userID, wallet string, amount float64, remark string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return err
	}
	l.credit(a, wallet, amount, remark)
	return nil
}

func (l *Ledger) Summary(userID string) (Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{USDTBalance: a.usdt, DepositBalance: a.deposit}
	for _, p := range a.packages {
		s.TotalInvestment += p.Amount
	}
	for _, t := range a.txs {
		if t.Wallet != WalletUSDT {
			continue
		}
		s.TotalIncomeEarned += t.Credited
		if t.Remark == "withdraw" {
			s.USDTWithdrawTotal += t.Debited
		}
	}
	return s, nil
}

// BuyPackage moves amount from the deposit wallet into a new package.
func (l *Ledger) BuyPackage(userID string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return err
	}
	if amount > a.deposit {
		return ErrInsufficientFunds
	}

	now := l.now().UTC()
	a.deposit -= amount
	a.packages = append(a.packages, Package{Amount: amount, StartDate: now, Status: "active"})
	a.txs = append(a.txs, Transaction{
		Debited:   amount,
		Remark:    "package",
		Type:      TypeDebit,
		Wallet:    WalletDeposit,
		Status:    "completed",
		CreatedAt: now,
	})
	return nil
}

// Withdraw debits amount from the USDT wallet and records a pending payout
// to toAddress.
func (l *Ledger) Withdraw(userID string, amount float64, toAddress string) error {
	if amount < MinWithdrawal || amount > MaxWithdrawal {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return err
	}
	if amount > a.usdt {
		return ErrInsufficientFunds
	}

	a.usdt -= amount
	a.txs = append(a.txs, Transaction{
		Debited:   amount,
		Remark:    "withdraw",
		Type:      TypeDebit,
		Wallet:    WalletUSDT,
		Status:    "pending",
		ToAddress: toAddress,
		CreatedAt: l.now().UTC(),
	})
	return nil
}

func (l *Ledger) Packages(userID string) ([]Package, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return nil, err
	}
	return append([]Package(nil), a.packages...), nil
}

// Transactions returns the matching rows, newest first.
func (l *Ledger) Transactions(userID string, f Filter) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return nil, err
	}
	var out []Transaction
	for i := len(a.txs) - 1; i >= 0; i-- {
		if f.match(a.txs[i]) {
			out = append(out, a.txs[i])
		}
	}
	return out, nil
}

func (l *Ledger) DepositAddress(userID string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return "", err
	}
	return a.address, nil
}

// QueueDeposit simulates an on-chain transfer to the member's deposit
// address. It is credited by the next CheckDeposits.
func (l *Ledger) QueueDeposit(userID string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return err
	}
	a.pending = append(a.pending, amount)
	return nil
}

// CheckDeposits credits all queued deposits and returns how many there were.
func (l *Ledger) CheckDeposits(userID string) (int, float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.get(userID)
	if err != nil {
		return 0, 0, err
	}
	var total float64
	for _, amt := range a.pending {
		l.credit(a, WalletDeposit, amt, "deposit")
		total += amt
	}
	n := len(a.pending)
	a.pending = nil
	return n, total, nil
}
