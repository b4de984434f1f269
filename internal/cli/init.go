package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema and default admin",
	Long: `Create the database schema and the default admin account.
With --sample, also load the sample catalog and customers. Existing rows
are left alone, so init can be run more than once.`,
	RunE: runInit,
}

var withSample bool

func init() {
	initCmd.Flags().BoolVar(&withSample, "sample", false, "load sample products and customers")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database initialized successfully.")
	if !withSample {
		return nil
	}

	products, err := a.products.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	customers, err := a.customers.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}
	fmt.Fprintf(out, "Loaded %d sample products and %d sample customers.\n", products, customers)
	return nil
}
