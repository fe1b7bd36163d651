package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/snooze/internal/news"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		return whoami(cmd.Context(), env, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func whoami(ctx context.Context, env *environment, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, env.cfg.RequestTimeout())
	defer cancel()

	u, err := restoreUser(ctx, env)
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(out, "%s (%s)\n", u.Username, u.Name)
	fmt.Fprintf(out, "  favorites: %d\n", len(u.Favorites))
	fmt.Fprintf(out, "  stories:   %d\n", len(u.OwnStories))
	return nil
}

// restoreUser returns the user behind the stored session, or nil when there
// is no usable session.
func restoreUser(ctx context.Context, env *environment) (*news.User, error) {
	sess, ok := env.store.Load()
	if !ok {
		return nil, nil
	}
	u, err := env.backend.Restore(ctx, sess.Token, sess.Username)
	if err != nil {
		return nil, fmt.Errorf("error restoring session: %w", err)
	}
	return u, nil
}
