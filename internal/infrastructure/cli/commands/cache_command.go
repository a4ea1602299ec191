package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/app"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the response cache",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(container),
		newCacheClearCommand(container),
		newCacheSizeCommand(container),
		newCacheStatsCommand(container),
		newCacheConfigCommand(container),
	)

	return cacheCmd
}

func newCacheListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCacheEntries(cmd.OutOrStdout(), container)
		},
	}
}

func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached response",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CacheStore == nil {
				return errors.New(ErrCacheStoreUnavailable)
			}
			if err := container.CacheStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}

func newCacheSizeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Show cache size on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheSize(cmd.OutOrStdout(), container)
		},
	}
}

func newCacheStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache settings and per-model counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheStats(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func newCacheConfigCommand(container *app.Container) *cobra.Command {
	var ttlMinutes int
	var maxEntries int
	var enable, disable bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Update cache TTL, size or enable it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return errors.New("--enable and --disable are mutually exclusive")
			}
			return updateCacheConfiguration(cmd.Context(), cmd.OutOrStdout(), container, cacheUpdate{
				ttlMinutes: ttlMinutes,
				maxEntries: maxEntries,
				enable:     enable,
				disable:    disable,
			})
		},
	}

	cmd.Flags().IntVar(&ttlMinutes, "ttl", 0, "Cache TTL in minutes")
	cmd.Flags().IntVar(&maxEntries, "max", 0, "Max cache entries")
	cmd.Flags().BoolVar(&enable, "enable", false, "Enable the response cache")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disable the response cache")
	return cmd
}

func listCacheEntries(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return errors.New(ErrCacheStoreUnavailable)
	}

	entries, err := container.CacheStore.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedResponses)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s | %s\n",
			shortKey(entry.Key),
			entry.Model,
			humanize.Time(entry.CreatedAt))
	}
	return nil
}

func showCacheSize(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return errors.New(ErrCacheStoreUnavailable)
	}

	dir := container.CacheStore.Dir()
	totalSize, err := calculateDirectorySize(dir)
	if err != nil {
		return fmt.Errorf("failed to calculate cache size: %w", err)
	}

	fmt.Fprintf(out, "Cache directory: %s\nSize: %s\n", filesystem.FriendlyPath(dir), humanize.Bytes(uint64(totalSize)))
	return nil
}

func showCacheStats(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return errors.New(ErrCacheStoreUnavailable)
	}
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	entries, err := container.CacheStore.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}

	fmt.Fprintf(out, "Cache: %s\nTTL: %s\nMax entries: %d\nCurrent entries: %d\n",
		enabledLabel(cfg.Cache.Enabled),
		cfg.GetCacheTTL(),
		cfg.GetCacheMaxEntries(),
		len(entries))

	counts := calculateModelCounts(entries)
	if len(counts) == 0 {
		return nil
	}
	fmt.Fprintln(out, "Entries per model:")
	for _, tally := range helpers.TopTallies(counts, 0) {
		fmt.Fprintf(out, "  %s: %d\n", tally.Label, tally.Count)
	}
	return nil
}

type cacheUpdate struct {
	ttlMinutes int
	maxEntries int
	enable     bool
	disable    bool
}

// updateCacheConfiguration persists cache settings. They take effect on the
// next invocation.
func updateCacheConfiguration(ctx context.Context, out io.Writer, container *app.Container, update cacheUpdate) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if update.ttlMinutes > 0 {
		cfg.Cache.TTLMinutes = update.ttlMinutes
	}
	if update.maxEntries > 0 {
		cfg.Cache.MaxEntries = update.maxEntries
	}
	if update.enable {
		cfg.Cache.Enabled = true
	}
	if update.disable {
		cfg.Cache.Enabled = false
	}

	if err := helpers.SaveConfigWithValidation(ctx, container, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Cache %s, TTL %s, max %d entries.\n",
		enabledLabel(cfg.Cache.Enabled), cfg.GetCacheTTL(), cfg.GetCacheMaxEntries())
	return nil
}

// calculateDirectorySize sums regular file sizes under dirPath. A missing
// directory is empty.
func calculateDirectorySize(dirPath string) (int64, error) {
	var totalSize int64

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		totalSize += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return totalSize, nil
}

func calculateModelCounts(entries []domain.CacheEntry) map[string]int {
	counts := make(map[string]int)
	for _, entry := range entries {
		counts[entry.Model]++
	}
	return counts
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}

func enabledLabel(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
