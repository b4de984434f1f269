package cli

import (
	"errors"
	"fmt"
	"os"

	"go-pos-terminal/internal/shell"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive terminal",
	Long: `Start the interactive terminal: log in, then work through the
product, sale, customer, history, report and settings menus.

A default admin account (admin / admin123) is created on first start.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	opts := shell.Options{
		StoreName:   a.cfg.App.StoreName,
		Pause:       interactive,
		ClearScreen: interactive,
	}
	if interactive {
		opts.ReadPassword = func() (string, error) {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			return string(b), err
		}
	}

	a.log.Info("terminal started")
	err = shell.New(os.Stdin, os.Stdout, a.svc, opts, a.log).Run(cmd.Context())
	if errors.Is(err, shell.ErrRestartRequired) {
		fmt.Println("Restart pos to continue with the restored database.")
		return nil
	}
	return err
}
