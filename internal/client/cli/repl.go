package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	Wallet(ctx context.Context) error
	Team(ctx context.Context) error
	Referrals(ctx context.Context, args []string) error
	Packages(ctx context.Context) error
	Buy(ctx context.Context, args []string) error
	Transactions(ctx context.Context, args []string) error
	Withdraw(ctx context.Context, args []string) error
	Deposit(ctx context.Context) error
	Refresh(ctx context.Context) error
}

const (
	helpAnonymous     = "Available commands: register, login, status, exit"
	helpAuthenticated = "Available commands: status, profile [edit], dashboard, wallet, team, referrals [depth], " +
		"packages, buy [amount], transactions [type], withdraw [amount], deposit, refresh, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the member CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop exits
// on scanner EOF, when ctx is done or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("member %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpAuthenticated)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "profile":
			_ = a.Profile(ctx, args)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "wallet":
			_ = a.Wallet(ctx)

		case "team":
			_ = a.Team(ctx)

		case "referrals":
			_ = a.Referrals(ctx, args)

		case "packages":
			_ = a.Packages(ctx)

		case "buy":
			_ = a.Buy(ctx, args)

		case "transactions", "tx":
			_ = a.Transactions(ctx, args)

		case "withdraw":
			_ = a.Withdraw(ctx, args)

		case "deposit":
			_ = a.Deposit(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
