package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached segments and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.config.cacheConfig(false)
			if err != nil {
				return fmt.Errorf("get cache config: %w", err)
			}
			store, err := cache.Open(cmd.Context(), cc)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %q cannot be cleared", cc.Backend)
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			if cc.Dir != "" {
				printDetail("Directory: %s", cc.Dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.config.cacheConfig(false)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if cc.Dir == "" {
				return fmt.Errorf("cache backend %q has no directory", cc.Backend)
			}
			fmt.Println(cc.Dir)
			return nil
		},
	}
}
