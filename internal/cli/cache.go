package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rootfront/pkg/cache"
	"github.com/matzehuels/rootfront/pkg/config"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local front cache",
		Long: `Fronts are cached per graph and sweep settings. The file and bolt backends
keep them under the cache directory; redis entries expire on the server.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached fronts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.clearCache()
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print where the local backend keeps fronts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := cacheDir(c.Config)
				if c.Config.Cache.Backend == config.BackendBolt {
					dir = filepath.Join(dir, cache.BoltFile)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

func (c *CLI) clearCache() error {
	backend := c.Config.Cache.Backend
	switch backend {
	case config.BackendRedis:
		printWarning("Redis entries expire on their own; clear them with redis-cli if needed")
		return nil
	case config.BackendNone:
		printInfo("Caching is disabled")
		return nil
	}

	dir := cacheDir(c.Config)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	var (
		store cache.Cache
		err   error
	)
	if backend == config.BackendBolt {
		store, err = cache.NewBoltCache(dir)
	} else {
		store, err = cache.NewFileCache(dir)
	}
	if err != nil {
		return fmt.Errorf("open %s cache: %w", backend, err)
	}
	defer store.Close()

	n, err := store.(cache.Clearer).Clear()
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached fronts", n)
	printDetail("Directory: %s", dir)
	return nil
}
