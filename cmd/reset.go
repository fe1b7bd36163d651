package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/snooze/internal/config"
	"github.com/zhubert/snooze/internal/logger"
)

var skipConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the session, local accounts and stories, settings and logs",
	Long: `Deletes everything snooze keeps on disk: the stored session, the local
accounts and stories, the settings file and the debug log.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	return runResetWithReader(resetTargets(cfg), os.Stdin, cmd.OutOrStdout())
}

// resetTargets lists the files reset removes, in display order
func resetTargets(cfg *config.Config) []string {
	return []string{
		cfg.SessionPath(),
		cfg.BackendPath(),
		cfg.FilePath(),
		logger.DefaultLogPath,
	}
}

// runResetWithReader allows injecting a reader for testing
func runResetWithReader(targets []string, input io.Reader, out io.Writer) error {
	var existing []string
	for _, path := range targets {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}

	if len(existing) == 0 {
		fmt.Fprintln(out, "Nothing to reset.")
		return nil
	}

	// Print summary of what will be removed
	fmt.Fprintln(out, "This will remove:")
	for _, path := range existing {
		fmt.Fprintf(out, "  - %s\n", path)
	}

	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	// The log file is held open by the logger
	logger.Close()

	removed := 0
	for _, path := range existing {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: error removing %s: %v\n", path, err)
			continue
		}
		removed++
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Removed %d file(s).\n", removed)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
