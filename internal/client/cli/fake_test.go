package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/memberclient/internal/client/client"
	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/client/services"
	"github.com/dmitrijs2005/memberclient/internal/client/session"
	"github.com/dmitrijs2005/memberclient/internal/logging"
)

type memStore struct {
	mu   sync.Mutex
	sess *models.Session
}

func (m *memStore) Save(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sess = &cp
	return nil
}

func (m *memStore) Load(context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, nil
	}
	cp := *m.sess
	return &cp, nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}

type fakeAuthService struct {
	loginUser, loginPass string
	loginSess            *models.Session
	loginErr             error

	reg    models.Registration
	regRes *models.RegistrationResult
	regErr error

	otpUser, otp string
	otpMsg       string
	otpErr       error
	otpCalls     int
}

func (f *fakeAuthService) Login(_ context.Context, userID, password string) (*models.Session, error) {
	f.loginUser, f.loginPass = userID, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	cp := *f.loginSess
	return &cp, nil
}

func (f *fakeAuthService) Register(_ context.Context, r models.Registration) (*models.RegistrationResult, error) {
	f.reg = r
	return f.regRes, f.regErr
}

func (f *fakeAuthService) ReferrerName(context.Context, string) (string, error) {
	return "", nil
}

func (f *fakeAuthService) VerifyOTP(_ context.Context, userID, otp string) (string, error) {
	f.otpCalls++
	f.otpUser, f.otp = userID, otp
	return f.otpMsg, f.otpErr
}

type fakeAccountService struct {
	calls []string
	err   error

	profile      *models.Profile
	update       models.ProfileUpdate
	dashboard    *models.Dashboard
	wallet       *models.Wallet
	depth        int
	referrals    []models.Referral
	team         *models.TeamBusiness
	packages     []models.Package
	amount       float64
	filter       models.TransactionFilter
	transactions []models.Transaction
	deposit      *models.DepositAddress
	message      string
}

func (f *fakeAccountService) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeAccountService) Profile(context.Context) (*models.Profile, error) {
	f.record("profile")
	return f.profile, f.err
}

func (f *fakeAccountService) UpdateProfile(_ context.Context, u models.ProfileUpdate) (string, error) {
	f.record("update")
	f.update = u
	return f.message, f.err
}

func (f *fakeAccountService) Dashboard(context.Context) (*models.Dashboard, error) {
	f.record("dashboard")
	return f.dashboard, f.err
}

func (f *fakeAccountService) Wallet(context.Context) (*models.Wallet, error) {
	f.record("wallet")
	return f.wallet, f.err
}

func (f *fakeAccountService) Referrals(_ context.Context, depth int) ([]models.Referral, error) {
	f.record("referrals")
	f.depth = depth
	return f.referrals, f.err
}

func (f *fakeAccountService) TeamBusiness(context.Context) (*models.TeamBusiness, error) {
	f.record("team")
	return f.team, f.err
}

func (f *fakeAccountService) Packages(context.Context) ([]models.Package, error) {
	f.record("packages")
	return f.packages, f.err
}

func (f *fakeAccountService) BuyPackage(_ context.Context, amount float64) (string, error) {
	f.record("buy")
	f.amount = amount
	return f.message, f.err
}

func (f *fakeAccountService) Transactions(_ context.Context, tf models.TransactionFilter) ([]models.Transaction, error) {
	f.record("transactions")
	f.filter = tf
	return f.transactions, f.err
}

func (f *fakeAccountService) Withdraw(_ context.Context, amount float64) (string, error) {
	f.record("withdraw")
	f.amount = amount
	return f.message, f.err
}

func (f *fakeAccountService) DepositAddress(context.Context) (*models.DepositAddress, error) {
	f.record("deposit")
	return f.deposit, f.err
}

func (f *fakeAccountService) RefreshDeposit(context.Context) (string, error) {
	f.record("refresh")
	return f.message, f.err
}

var (
	_ services.AuthService    = (*fakeAuthService)(nil)
	_ services.AccountService = (*fakeAccountService)(nil)
	_ session.Store           = (*memStore)(nil)
)

type testApp struct {
	*App
	store   *memStore
	auth    *fakeAuthService
	account *fakeAccountService
	out     *bytes.Buffer
}

// newTestApp builds an App over in-memory fakes. lines become the input the
// prompts read.
func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()

	store := &memStore{}
	auth := &fakeAuthService{}
	account := &fakeAccountService{}
	out := &bytes.Buffer{}

	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}

	app := &App{
		logger:         logging.Nop{},
		controller:     session.NewController(store, auth),
		authService:    auth,
		accountService: account,
		reader:         bufio.NewReader(strings.NewReader(input)),
		out:            out,
	}
	return &testApp{App: app, store: store, auth: auth, account: account, out: out}
}

// loggedIn stores a session and lets the controller pick it up.
func (ta *testApp) loggedIn(t *testing.T) *testApp {
	t.Helper()
	ta.store.sess = &models.Session{Token: "tok", UserID: "TRT1001", FullName: "ALICE"}
	if _, err := ta.controller.CheckStatus(context.Background()); err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	return ta
}

func stubPassword(t *testing.T, pw ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		p := pw[i%len(pw)]
		i++
		return []byte(p), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func expiredErr() error {
	return &client.Error{Kind: client.KindAuthExpired, Message: client.MsgSessionExpired, Status: 401}
}
