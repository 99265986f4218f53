// Command vcardgen builds vCard contact cards from YAML or JSON contacts,
// serves them over HTTP and converts them to QR codes.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cyp0633/libvcard/internal/config"
	"github.com/cyp0633/libvcard/internal/media"
	"github.com/cyp0633/libvcard/vcard"
	"github.com/facebookgo/atomicfile"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// app holds the state shared by all commands once the config is loaded.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "vcardgen",
		Short: "Build and serve vCard contact cards",
		Long: `vcardgen turns contacts written as YAML or JSON into vCard 3.0 documents.

Old iOS clients (before iOS 8) cannot import plain vCards, so for their
user agents the card is wrapped in a VCALENDAR event instead.

Example:
  vcardgen build -f jane.yaml --stdout
  vcardgen build -f jane.yaml --user-agent "Mozilla/5.0 (iPhone; CPU iPhone OS 6_0 like Mac OS X)"
  vcardgen serve --seed contacts/`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(a.buildCmd())
	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.inspectCmd())
	rootCmd.AddCommand(a.qrCmd())
	rootCmd.AddCommand(a.scanCmd())
	return rootCmd
}

// load reads the config file and sets up logging. Flags override the file.
func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// resolver creates the media resolver described by the config.
func (a *app) resolver() *media.Resolver {
	opts := []media.Option{
		media.WithLogger(a.logger),
		media.WithHTTPClient(&http.Client{
			Timeout:   a.cfg.Media.Timeout,
			Transport: media.NewLoggingTransport(nil, a.logger),
		}),
		media.WithMaxSize(a.cfg.Media.MaxSize),
	}
	if a.cfg.Media.CacheEntries > 0 {
		opts = append(opts, media.WithCache(media.NewCache(media.CacheConfig{
			TTL:        a.cfg.Media.CacheTTL,
			MaxEntries: a.cfg.Media.CacheEntries,
		})))
	} else {
		opts = append(opts, media.WithCache(nil))
	}
	return media.NewResolver(opts...)
}

// builderOptions returns the options every card is built with.
func (a *app) builderOptions() []vcard.Option {
	return []vcard.Option{
		vcard.WithMediaResolver(a.resolver()),
		vcard.WithLogger(a.logger),
		vcard.WithCharset(a.cfg.Card.Charset),
	}
}

// writeFile replaces path atomically with data.
func writeFile(path string, data []byte) error {
	f, err := atomicfile.New(path, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Abort()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
