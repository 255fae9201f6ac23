package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/back1ash/IssueBell/internal/api"
	"github.com/back1ash/IssueBell/internal/githubapi"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagServer    = "server"
	flagToken     = "token"
	flagSession   = "session"
	flagTimeout   = "timeout"
	flagJSON      = "json"
	flagCSV       = "csv"
	flagMarkdown  = "markdown"
	flagThreads   = "threads"
	flagCacheTTL  = "cache-ttl"
	flagNoCache   = "no-cache"
	flagLogLevel  = "log-level"
	flagConfig    = "config"
	defaultServer = "http://localhost:8000"
	configName    = "issuebell"
)

var rootCmd *cobra.Command

// Execute runs the CLI.
func Execute(ctx context.Context, out io.Writer, errOut io.Writer) error {
	if rootCmd == nil {
		rootCmd = newRootCmd()
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issuebell",
		Short: "Manage IssueBell repository + label subscriptions",
		Long: heredoc.Doc(`
			Subscribe to new issues on GitHub repositories by label. Each subscription pairs a
			repository (OWNER/REPO, an HTTPS URL, or an SSH remote) with a label pattern; the
			IssueBell server sends a notification whenever a matching issue is opened.
		`),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindPersistentFlags(cmd); err != nil {
				return err
			}
			if err := readConfig(viper.GetString(flagConfig)); err != nil {
				return err
			}
			level := parseLogLevel(viper.GetString(flagLogLevel))
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	cmd.PersistentFlags().String(flagServer, defaultServer, "Base URL of the IssueBell server")
	cmd.PersistentFlags().String(flagToken, "", "Bearer token sent to the IssueBell server")
	cmd.PersistentFlags().String(flagSession, "", "Session cookie value from a signed-in browser (env: ISSUEBELL_SESSION)")
	cmd.PersistentFlags().Duration(flagTimeout, 15*time.Second, "Timeout for a single API request")
	cmd.PersistentFlags().Bool(flagJSON, false, "Print the board as JSON")
	cmd.PersistentFlags().String(flagCSV, "", "Write subscriptions as CSV to the given path")
	cmd.PersistentFlags().Bool(flagMarkdown, false, "Print the board as Markdown")
	cmd.PersistentFlags().Int(flagThreads, 4, "Maximum number of concurrent API requests")
	cmd.PersistentFlags().Duration(flagCacheTTL, 0, "Duration to cache API responses (e.g. 10m, 1h)")
	cmd.PersistentFlags().Bool(flagNoCache, false, "Disable on-disk API response cache")
	cmd.PersistentFlags().String(flagLogLevel, "info", "Minimum log level (debug|info|warn|error)")
	cmd.PersistentFlags().String(flagConfig, "", "Path to a config file (default: issuebell.yaml in the user config dir)")

	viper.SetEnvPrefix("ISSUEBELL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to bind flags: %v\n", err)
	}

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newLabelsCmd())

	return cmd
}

func bindPersistentFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// readConfig loads an explicit config file, or issuebell.yaml from the user
// config directory when present.
func readConfig(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	viper.SetConfigName(configName)
	viper.AddConfigPath(filepath.Join(dir, configName))
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	slog.Debug("loaded config", slog.String("path", viper.ConfigFileUsed()))
	return nil
}

func cacheSettings() (time.Duration, bool) {
	cacheTTL := viper.GetDuration(flagCacheTTL)
	return cacheTTL, cacheTTL > 0 && !viper.GetBool(flagNoCache)
}

func newBackendClient() (*api.Client, error) {
	cacheTTL, enableCache := cacheSettings()
	client, err := api.NewClient(api.Options{
		BaseURL:     viper.GetString(flagServer),
		Token:       viper.GetString(flagToken),
		Session:     viper.GetString(flagSession),
		Timeout:     viper.GetDuration(flagTimeout),
		CacheTTL:    cacheTTL,
		EnableCache: enableCache,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

func newGitHubClient() (*githubapi.Client, error) {
	cacheTTL, enableCache := cacheSettings()
	client, err := githubapi.NewClient(githubapi.Options{CacheTTL: cacheTTL, EnableCache: enableCache})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}

func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(f)
	}
	return false
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func trimmedValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
