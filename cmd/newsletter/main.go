// Package main is the entry point for the newsletter CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/digest"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/output"
	"github.com/selah-content-api/internal/store"
	"github.com/selah-content-api/internal/validation"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	envFile string
	noColor bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "newsletter",
	Short: "Build, preview, and send devotional digests",
	Long: `newsletter renders the daily and weekly digests and hands them to
the configured send API.

Content comes from the built-in registries and is a pure function of
the date, so a digest rebuilt anywhere for the same date is identical
to the one that was sent. Configuration is read from flags, from
NEWSLETTER_* environment variables, and from an env file, in that
order of precedence.

Example usage:
  newsletter preview                  # Today's daily digest as a table
  newsletter preview weekly           # The week ending today
  newsletter send --dry-run           # Print the payload without sending
  newsletter send weekly --date 2025-08-17
  newsletter topics                   # List the topic and theme registries`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initEnv()
	},
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file loaded before NEWSLETTER_* variables are read")
	rootCmd.PersistentFlags().String("date", "", "digest date YYYY-MM-DD (default: today UTC; for weekly, the week's end)")
	rootCmd.PersistentFlags().String("base-url", "", "site base URL for article links (default: fragment links)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")

	_ = viper.BindPFlag("date", rootCmd.PersistentFlags().Lookup("date"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
}

// initEnv loads the env file and wires NEWSLETTER_* variables into
// viper. A missing env file is fine; a malformed one is not.
func initEnv() error {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}

	viper.SetEnvPrefix("NEWSLETTER")
	viper.AutomaticEnv()
	viper.SetDefault("mode", "daily")

	return nil
}

// digestKind resolves the positional mode argument, falling back to
// NEWSLETTER_MODE and then to daily.
func digestKind(args []string) (models.DigestKind, error) {
	mode := viper.GetString("mode")
	if len(args) > 0 {
		mode = args[0]
	}
	switch mode {
	case "", "daily":
		return models.DigestDaily, nil
	case "weekly":
		return models.DigestWeekly, nil
	default:
		return "", fmt.Errorf("mode must be 'daily' or 'weekly', got %q", mode)
	}
}

// digestDate resolves the digest date from the --date flag or
// NEWSLETTER_DATE, defaulting to today in UTC.
func digestDate() (string, error) {
	dateISO := viper.GetString("date")
	if dateISO == "" {
		return content.DateISO(time.Now().UTC()), nil
	}
	if errs := validation.NewValidator().ValidateDate("date", dateISO); len(errs) > 0 {
		return "", fmt.Errorf("date %q: %s", dateISO, errs[0].Message)
	}
	return dateISO, nil
}

// newBuilder wires a digest builder over the built-in registries. The
// CLI persists nothing, so the engine runs on a throwaway store.
func newBuilder() *digest.Builder {
	log := newLogger()
	engine := content.NewEngine(content.Default(), store.NewMemoryStore(), log)
	return digest.NewBuilder(engine, log)
}

func newLogger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}

func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ColorsEnabled(noColor))
}
