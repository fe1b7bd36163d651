package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		return logout(env, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func logout(env *environment, out io.Writer) error {
	sess, ok := env.store.Load()
	if !ok {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}
	if err := env.store.Clear(); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	fmt.Fprintf(out, "Logged out %s.\n", sess.Username)
	return nil
}
