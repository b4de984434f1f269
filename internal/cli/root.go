package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "pos",
	Short: "Point-of-sale terminal for a small retail store",
	Long: `pos runs a single-operator point-of-sale terminal: barcode scanning,
cart and checkout, catalog, customers, users, sale history and reports.

The store lives in a local SQLite file by default; PostgreSQL and MySQL
are available through db.driver and db.dsn.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: pos.yaml in ., $HOME/.pos, /etc/pos)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database file (overrides db.path)")
	_ = v.BindPFlag("db.path", rootCmd.PersistentFlags().Lookup("db"))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
