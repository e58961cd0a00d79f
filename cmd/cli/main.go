package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed)
	pendingColor = color.New(color.FgYellow)
	mutedColor   = color.New(color.FgHiBlack)
)

const usage = `Commands:
  register                              create a user
  login                                 sign in
  open <SAVINGS|CHECKING> [currency]    open an account
  accounts                              list your accounts
  deposit <account_id> <amount> [currency]
  withdraw <account_id> <amount> [currency]
  transfer <account_id> <recipient_id> <amount> [currency]
  history <account_id>                  ledger entries of an account
  tx <entry_id>                         one ledger entry
  help
  exit`

func main() {
	c := newClient(
		envOr("LEDGER_ACCOUNTS_URL", "http://localhost:5000"),
		envOr("LEDGER_TRANSACTIONS_URL", "http://localhost:5001"),
	)
	s := &session{
		client: c,
		in:     bufio.NewReader(os.Stdin),
		out:    color.Output,
		readSecret: func() (string, error) {
			fd := int(os.Stdin.Fd())
			if !term.IsTerminal(fd) {
				return "", errNotTerminal
			}
			raw, err := term.ReadPassword(fd)
			return string(raw), err
		},
	}
	titleColor.Fprintln(s.out, "Fintech Ledger CLI") //nolint:errcheck
	fmt.Fprintln(s.out, `Type "help" for commands.`)
	s.loop(context.Background())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var errNotTerminal = errors.New("stdin is not a terminal")

type session struct {
	client     *client
	in         *bufio.Reader
	out        io.Writer
	readSecret func() (string, error)
}

func (s *session) loop(ctx context.Context) {
	for {
		fmt.Fprint(s.out, "> ")
		line, err := s.in.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			if !s.exec(ctx, strings.Fields(line)) {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// exec runs one command and reports whether the session continues.
func (s *session) exec(ctx context.Context, args []string) bool {
	var err error
	switch cmd := strings.ToLower(args[0]); cmd {
	case "exit", "quit":
		return false
	case "help":
		fmt.Fprintln(s.out, usage)
	case "register", "login":
		err = s.credentials(ctx, cmd)
	case "open":
		err = s.open(ctx, args[1:])
	case "accounts":
		err = s.accounts(ctx)
	case "deposit", "withdraw":
		if len(args) != 3 && len(args) != 4 {
			err = fmt.Errorf("usage: %s <account_id> <amount> [currency]", cmd)
			break
		}
		txType := "DEPOSIT"
		if cmd == "withdraw" {
			txType = "WITHDRAWAL"
		}
		err = s.transact(ctx, txType, args[1], args[2], "", optional(args, 3))
	case "transfer":
		if len(args) != 4 && len(args) != 5 {
			err = errors.New("usage: transfer <account_id> <recipient_id> <amount> [currency]")
			break
		}
		err = s.transact(ctx, "TRANSFER", args[1], args[3], args[2], optional(args, 4))
	case "history":
		if len(args) != 2 {
			err = errors.New("usage: history <account_id>")
			break
		}
		err = s.history(ctx, args[1])
	case "tx":
		if len(args) != 2 {
			err = errors.New("usage: tx <entry_id>")
			break
		}
		var e *entry
		if e, err = s.client.Transaction(ctx, args[1]); err == nil {
			s.printEntry(e)
		}
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		failColor.Fprintln(s.out, "✗", err) //nolint:errcheck
	}
	return true
}

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *session) credentials(ctx context.Context, cmd string) error {
	username, err := s.prompt("Username: ")
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, "Password: ")
	password, err := s.readSecret()
	fmt.Fprintln(s.out)
	if errors.Is(err, errNotTerminal) {
		password, err = s.prompt("")
	}
	if err != nil {
		return err
	}

	if cmd == "register" {
		if err := s.client.Register(ctx, username, password); err != nil {
			return err
		}
		successColor.Fprintln(s.out, "✓ registered", username) //nolint:errcheck
	}
	if err := s.client.Login(ctx, username, password); err != nil {
		return err
	}
	successColor.Fprintln(s.out, "✓ logged in as", username) //nolint:errcheck
	return nil
}

func (s *session) open(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: open <SAVINGS|CHECKING> [currency]")
	}
	currency := ""
	if len(args) == 2 {
		currency = strings.ToUpper(args[1])
	}
	a, err := s.client.OpenAccount(ctx, strings.ToUpper(args[0]), currency)
	if err != nil {
		return err
	}
	successColor.Fprintf(s.out, "✓ opened %s account %s\n", a.AccountType, a.AccountNumber) //nolint:errcheck
	s.printAccount(*a)
	return nil
}

func (s *session) accounts(ctx context.Context) error {
	list, err := s.client.Accounts(ctx)
	if err != nil {
		return err
	}
	for _, a := range list {
		s.printAccount(a)
	}
	return nil
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (s *session) transact(ctx context.Context, txType, accountID, amount, recipientID, currency string) error {
	if _, err := decimal.NewFromString(amount); err != nil {
		return fmt.Errorf("invalid amount %q", amount)
	}
	e, err := s.client.Transact(ctx, txType, accountID, amount, recipientID, strings.ToUpper(currency))
	if err != nil {
		return err
	}
	s.printEntry(e)
	return nil
}

func (s *session) history(ctx context.Context, accountID string) error {
	list, err := s.client.History(ctx, accountID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		mutedColor.Fprintln(s.out, "no entries") //nolint:errcheck
	}
	for i := range list {
		s.printEntry(&list[i])
	}
	return nil
}

func (s *session) printAccount(a account) {
	fmt.Fprintf(s.out, "  %s  %-8s %s %s  ", a.ID, a.AccountType, a.Balance, a.Currency)
	mutedColor.Fprintln(s.out, a.AccountNumber, a.Status) //nolint:errcheck
}

func (s *session) printEntry(e *entry) {
	status := pendingColor
	switch e.Status {
	case "COMPLETED":
		status = successColor
	case "FAILED":
		status = failColor
	}
	fmt.Fprintf(s.out, "  %s  %-10s %s %s  ", e.ID, e.TransactionType, e.Amount, e.Currency)
	status.Fprint(s.out, e.Status) //nolint:errcheck
	if e.FailureReason != "" {
		mutedColor.Fprintf(s.out, " (%s)", e.FailureReason) //nolint:errcheck
	}
	fmt.Fprintln(s.out)
}
