package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/snooze/internal/logger"
	"github.com/zhubert/snooze/internal/story"
)

var storiesLimit int

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Print the story list",
	Long: `Prints every story, newest first, one per line. Stories the logged-in
user has favorited are starred.`,
	Args: cobra.NoArgs,
	RunE: runStories,
}

func init() {
	storiesCmd.Flags().IntVarP(&storiesLimit, "limit", "n", 0, "Print at most this many stories (0 for all)")
	rootCmd.AddCommand(storiesCmd)
}

func runStories(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	return printStories(cmd.Context(), env, cmd.OutOrStdout(), storiesLimit)
}

// printStories writes one plain line per story
func printStories(ctx context.Context, env *environment, out io.Writer, limit int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, env.cfg.RequestTimeout())
	defer cancel()

	stories, err := env.backend.FetchStories(ctx)
	if err != nil {
		return fmt.Errorf("error fetching stories: %w", err)
	}

	idx := favoritesIndex(ctx, env)

	if limit > 0 && len(stories) > limit {
		stories = stories[:limit]
	}
	if len(stories) == 0 {
		fmt.Fprintln(out, "No stories yet.")
		return nil
	}
	for _, it := range story.RenderAll(stories, idx, false) {
		fmt.Fprintln(out, story.PlainLine(it))
	}
	return nil
}

// favoritesIndex stars stories from the stored session. A restore failure is
// logged and the list prints unstarred.
func favoritesIndex(ctx context.Context, env *environment) story.Index {
	user, err := restoreUser(ctx, env)
	if err != nil {
		logger.WithComponent("cmd").Warn("cannot restore session for favorites", "error", err)
	}
	return story.BuildIndex(user)
}
