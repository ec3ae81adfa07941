package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ppmedit/internal/config"
	"github.com/matzehuels/ppmedit/pkg/cache"
	"github.com/matzehuels/ppmedit/pkg/errors"
)

// cacheCommand manages the artifact cache.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the transformed-image cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached image",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.openCache(cmd.Context())
			if err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "Unable to open cache: %v", err)
			}
			defer cc.Close()

			if _, err := cache.Clear(cmd.Context(), cc); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "Unable to clear cache: %v", err)
			}
			printSuccess(c.Out, "Cleared cache")
			printDetail(c.Out, "%s", c.cacheLocation())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached images are stored",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.Out, c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory or a Redis URL.
func (c *CLI) cacheLocation() string {
	if c.Config.Cache.Backend == config.BackendRedis {
		return fmt.Sprintf("redis://%s/%d", c.Config.Cache.RedisAddr, c.Config.Cache.RedisDB)
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return dir
}
