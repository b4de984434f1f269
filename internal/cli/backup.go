package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Copy the SQLite database to a backup file",
	Long: `Copy the SQLite database to a backup file. A bare filename is placed
in backup.dir. The copy is verified against a BLAKE2b checksum.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Overwrite the SQLite database with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

var restoreYes bool

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(backupCmd, restoreCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.svc.Backup.Backup(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s (%d bytes, blake2b %s)\n", res.Path, res.Bytes, res.Checksum)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	src, err := a.svc.Backup.Locate(args[0])
	if err != nil {
		return err
	}
	if !restoreYes {
		fmt.Fprintf(cmd.OutOrStdout(), "WARNING: This will overwrite %s with %s!\nAre you sure? (y/n): ", a.cfg.DB.Path, src)
		var answer string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Restore canceled.")
			return nil
		}
	}

	res, err := a.svc.Backup.Restore(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Database restored successfully from %s (%d bytes)\n", src, res.Bytes)
	return nil
}
