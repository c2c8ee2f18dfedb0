package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"copper/internal/cache"
)

func newCacheCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the result cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "cache root directory (default $COPPER_CACHE_DIR or the user cache dir)")

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "List cache sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCacheInfo(cmd.OutOrStdout(), cache.ResolveRoot(dir))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cache session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return clearCache(cmd.OutOrStdout(), cache.ResolveRoot(dir))
		},
	})
	return cmd
}

func printCacheInfo(out io.Writer, root string) error {
	sessions, err := cache.Info(root)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "cache root: %s\n", root)
	if len(sessions) == 0 {
		fmt.Fprintln(out, "no sessions")
		return nil
	}
	total := 0
	for _, s := range sessions {
		total += s.Entries
		ver, scope := "?", ""
		if m := s.Manifest; m != nil {
			ver = m.Version
			if len(m.Only) > 0 {
				scope += " only=" + strings.Join(m.Only, ",")
			}
			if len(m.Except) > 0 {
				scope += " except=" + strings.Join(m.Except, ",")
			}
		}
		fmt.Fprintf(out, "  %s  %-12s %6d entries  %s%s\n",
			s.Hash, ver, s.Entries, s.ModTime.Format(time.DateTime), scope)
	}
	fmt.Fprintf(out, "%d %s, %d entries\n", len(sessions), plural(len(sessions), "session", "sessions"), total)
	return nil
}

func clearCache(out io.Writer, root string) error {
	n, err := cache.Clear(root)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Fprintf(out, "removed %d cache %s from %s\n", n, plural(n, "session", "sessions"), root)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
