package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"go-pos-terminal/internal/middleware"
	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/service"

	"go.uber.org/zap"
)

// ErrRestartRequired is returned by Run after a database restore
var ErrRestartRequired = errors.New("database restored, restart required")

var errInvalidNumber = errors.New("invalid number")

type Services struct {
	Auth      service.AuthService
	Products  service.ProductService
	Customers service.CustomerService
	Users     service.UserService
	Sales     service.SaleService
	Reports   service.ReportService
	Backup    service.BackupService
}

type Options struct {
	StoreName string
	// Pause waits for Enter after each screen
	Pause bool
	// ClearScreen clears the terminal before each menu
	ClearScreen bool
	// ReadPassword reads a secret without echo; nil reads a plain line
	ReadPassword func() (string, error)
}

type Shell struct {
	in   *bufio.Reader
	out  io.Writer
	svc  Services
	opts Options
	log  *zap.Logger
}

func New(in io.Reader, out io.Writer, svc Services, opts Options, log *zap.Logger) *Shell {
	if opts.StoreName == "" {
		opts.StoreName = "GENERAL STORE POS SYSTEM"
	}
	return &Shell{
		in:   bufio.NewReader(in),
		out:  out,
		svc:  svc,
		opts: opts,
		log:  log.Named("shell"),
	}
}

// Run logs a user in and drives the main menu until Exit or end of input
func (s *Shell) Run(ctx context.Context) error {
	session, err := s.login(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	err = s.mainMenu(middleware.WithSession(ctx, session))
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) login(ctx context.Context) (*service.Session, error) {
	s.clear()
	s.header("POS SYSTEM LOGIN")
	for {
		username, err := s.prompt("Username: ")
		if err != nil {
			return nil, err
		}
		password, err := s.password("Password: ")
		if err != nil {
			return nil, err
		}

		session, err := s.svc.Auth.Login(ctx, username, password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			s.println("Invalid username or password. Try again.")
			continue
		}
		if err != nil {
			return nil, err
		}
		return session, nil
	}
}

type menuItem struct {
	label  string
	action middleware.Handler // nil leaves the menu
}

func (s *Shell) mainMenu(ctx context.Context) error {
	session, _ := middleware.SessionFrom(ctx)

	items := []menuItem{
		{"Product Management", middleware.RequirePrivilege(model.PrivProductManage, s.productMenu)},
		{"Process Sale", middleware.RequirePrivilege(model.PrivSaleCreate, s.processSale)},
		{"Customer Management", middleware.RequirePrivilege(model.PrivCustomerManage, s.customerMenu)},
		{"Sale History", middleware.RequirePrivilege(model.PrivSaleView, s.saleHistoryMenu)},
		{"Reports", middleware.RequirePrivilege(model.PrivReportView, s.reportMenu)},
	}
	if session.HasPrivilege(model.PrivSystemManage) {
		items = append(items, menuItem{"System Settings", middleware.RequirePrivilege(model.PrivSystemManage, s.settingsMenu)})
	}
	items = append(items, menuItem{label: "Exit"})

	err := s.menu(ctx, s.opts.StoreName, items, "\nEnter your choice: ", func() {
		s.printf("\nLogged in as: %s (%s)\n", session.FullName, session.Role)
	})
	if err == nil {
		s.println("Exiting system...")
	}
	return err
}

// menu shows items until one without an action is picked. Action errors are
// printed and the menu is shown again; input and restart errors end it.
func (s *Shell) menu(ctx context.Context, title string, items []menuItem, promptText string, intro func()) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.clear()
		s.header(title)
		if intro != nil {
			intro()
		}
		for i, it := range items {
			if i == 0 {
				s.println()
			}
			s.printf("%d. %s\n", i+1, it.label)
		}
		if promptText == "" {
			promptText = fmt.Sprintf("\nEnter your choice (1-%d): ", len(items))
		}

		choice, err := s.promptInt(promptText)
		if err != nil && !errors.Is(err, errInvalidNumber) {
			return err
		}
		if err != nil || choice < 1 || choice > len(items) {
			if err := s.invalidChoice(); err != nil {
				return err
			}
			continue
		}

		item := items[choice-1]
		if item.action == nil {
			return nil
		}
		if err := item.action(ctx); err != nil {
			if fatal(err) {
				return err
			}
			s.log.Debug("action failed", zap.String("menu", title), zap.String("item", item.label), zap.Error(err))
			s.printf("Error: %v\n", err)
			if err := s.pause(); err != nil {
				return err
			}
		}
	}
}

func fatal(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, ErrRestartRequired) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(args ...interface{}) {
	fmt.Fprintln(s.out, args...)
}

func (s *Shell) clear() {
	if s.opts.ClearScreen {
		fmt.Fprint(s.out, "\033[H\033[2J")
	}
}

const boxWidth = 40

// header prints title centered in a double-line box
func (s *Shell) header(title string) {
	pad := boxWidth - utf8.RuneCountInString(title)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	s.println("╔" + strings.Repeat("═", boxWidth) + "╗")
	s.println("║" + strings.Repeat(" ", left) + title + strings.Repeat(" ", pad-left) + "║")
	s.println("╚" + strings.Repeat("═", boxWidth) + "╝")
}

// prompt prints label and reads one line without its newline.
// It returns io.EOF only when no more input is available.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) password(label string) (string, error) {
	if s.opts.ReadPassword == nil {
		return s.prompt(label)
	}
	fmt.Fprint(s.out, label)
	pw, err := s.opts.ReadPassword()
	s.println()
	return pw, err
}

// promptInt returns errInvalidNumber for anything that isn't an integer
func (s *Shell) promptInt(label string) (int, error) {
	text, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

func (s *Shell) confirm(label string) (bool, error) {
	answer, err := s.prompt(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func (s *Shell) pause() error {
	if !s.opts.Pause {
		return nil
	}
	_, err := s.prompt("\nPress Enter to continue...")
	return err
}

func (s *Shell) invalidChoice() error {
	if !s.opts.Pause {
		s.println("Invalid choice.")
		return nil
	}
	_, err := s.prompt("Invalid choice. Press Enter to try again...")
	return err
}
