package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/memberclient/internal/client/models"
)

const defaultReferralDepth = 3

func (a *App) Profile(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) > 0 && args[0] == "edit" {
		return a.editProfile(ctx)
	}

	p, err := a.accountService.Profile(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "User ID:          %s\n", p.UserID)
	fmt.Fprintf(a.out, "Name:             %s\n", p.FullName)
	fmt.Fprintf(a.out, "Phone:            %s\n", p.Phone)
	fmt.Fprintf(a.out, "Email:            %s\n", p.Email)
	fmt.Fprintf(a.out, "Withdraw address: %s\n", p.WithdrawAddress)
	return nil
}

func (a *App) editProfile(ctx context.Context) error {
	var u models.ProfileUpdate

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"New full name (empty keeps current)", &u.FullName},
		{"New phone (empty keeps current)", &u.Phone},
		{"New withdrawal address (empty keeps current)", &u.WithdrawalAddress},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	msg, err := a.accountService.UpdateProfile(ctx, u)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	d, err := a.accountService.Dashboard(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Total investment:  %.2f\n", d.TotalInvestment)
	fmt.Fprintf(a.out, "USDT balance:      %.2f\n", d.USDTBalance)
	fmt.Fprintf(a.out, "Deposit balance:   %.2f\n", d.DepositBalance)
	fmt.Fprintf(a.out, "Direct team:       %d (%d active)\n", d.DirectTeamCount, d.DirectActiveTeam)
	fmt.Fprintf(a.out, "Income earned:     %.2f\n", d.TotalIncomeEarned)
	fmt.Fprintf(a.out, "Withdrawn:         %.2f\n", d.USDTWithdrawTotal)
	fmt.Fprintf(a.out, "Bonuses:           direct %.2f, first deposit %.2f, daily %.2f, team %.2f\n",
		d.Bonuses.DirectBonus, d.Bonuses.FirstDeposit, d.Bonuses.DailyBonus, d.Bonuses.TeamCommission)
	return nil
}

func (a *App) Wallet(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	w, err := a.accountService.Wallet(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "USDT balance:    %.2f\n", w.USDTBalance)
	fmt.Fprintf(a.out, "Deposit balance: %.2f\n", w.DepositBalance)
	return nil
}

func (a *App) Team(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	tb, err := a.accountService.TeamBusiness(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Team business: %.2f\n", tb.TotalBusiness)
	return nil
}

// Referrals lists the downline up to the depth given as the first argument.
func (a *App) Referrals(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	depth := defaultReferralDepth
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: referrals [depth]")
			return err
		}
		depth = n
	}

	refs, err := a.accountService.Referrals(ctx, depth)
	if err != nil {
		return a.report(err)
	}
	if len(refs) == 0 {
		fmt.Fprintln(a.out, "No referrals yet.")
		return nil
	}
	for _, r := range refs {
		fmt.Fprintf(a.out, "L%d  %-10s %-20s referrer %-10s invested %.2f  joined %s\n",
			r.Level, r.UserID, r.Name, r.Referrer, r.InvestmentAmount, formatDate(r.RegistrationDate))
	}
	return nil
}

func (a *App) Packages(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	pkgs, err := a.accountService.Packages(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(pkgs) == 0 {
		fmt.Fprintln(a.out, "No packages yet.")
		return nil
	}
	for _, p := range pkgs {
		fmt.Fprintf(a.out, "%10.2f  %-10s started %s\n", p.PackageAmount, p.Status, formatDate(p.StartDate))
	}
	return nil
}

// Buy purchases a package from the deposit wallet. The amount is prompted
// for when not given as an argument.
func (a *App) Buy(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	amount, err := a.amountArg(args, "Enter package amount (USDT)")
	if err != nil {
		return err
	}
	msg, err := a.accountService.BuyPackage(ctx, amount)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Transactions lists ledger rows, optionally filtered by type.
func (a *App) Transactions(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	var f models.TransactionFilter
	if len(args) > 0 {
		f.Type = args[0]
	}

	txs, err := a.accountService.Transactions(ctx, f)
	if err != nil {
		return a.report(err)
	}
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No transactions.")
		return nil
	}
	for _, t := range txs {
		fmt.Fprintf(a.out, "%s  %+10.2f  %-10s %-8s %s", formatDate(t.CreatedAt), t.Amount(), t.Type, t.WalletName, t.TransactionRemark)
		if t.Status != "" {
			fmt.Fprintf(a.out, " [%s]", t.Status)
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

// Withdraw requests a USDT withdrawal to the address stored in the profile.
func (a *App) Withdraw(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	amount, err := a.amountArg(args, "Enter amount to withdraw (USDT)")
	if err != nil {
		return err
	}
	msg, err := a.accountService.Withdraw(ctx, amount)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Deposit(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	addr, err := a.accountService.DepositAddress(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Deposit address: %s\n", addr.Address)
	if addr.Network != "" {
		fmt.Fprintf(a.out, "Network:         %s\n", addr.Network)
	}
	fmt.Fprintln(a.out, "Run 'refresh' after sending funds.")
	return nil
}

// Refresh asks the backend to scan for incoming deposits.
func (a *App) Refresh(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	msg, err := a.accountService.RefreshDeposit(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) amountArg(args []string, prompt string) (float64, error) {
	if len(args) > 0 {
		return parseAmount(args[0]), nil
	}
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	return parseAmount(s), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateOnly)
}
