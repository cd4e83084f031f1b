package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selah-content-api/internal/digest"
	"github.com/selah-content-api/internal/mailer"
	"github.com/selah-content-api/internal/validation"
)

var sendCmd = &cobra.Command{
	Use:   "send [daily|weekly]",
	Short: "Build a digest and deliver it through the send API",
	Long: `Build the digest for the given date, render the text and HTML
email bodies, and post them to the send API.

The recipient, sender, and API credentials come from flags or from
NEWSLETTER_TO, NEWSLETTER_FROM, NEWSLETTER_API_URL, and
NEWSLETTER_API_KEY. A dry run validates everything and prints the
exact payload without touching the network.

Examples:
  newsletter send                            # Today's daily digest
  newsletter send weekly --date 2025-08-17   # The week ending August 17
  newsletter send --dry-run                  # Print the payload only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().String("api-url", "", "send API endpoint")
	sendCmd.Flags().String("api-key", "", "send API bearer token")
	sendCmd.Flags().String("to", "", "recipient address")
	sendCmd.Flags().String("from", "", "sender address")
	sendCmd.Flags().Bool("dry-run", false, "print the payload instead of sending")
	sendCmd.Flags().Duration("timeout", 30*time.Second, "send API request timeout")

	_ = viper.BindPFlag("api_url", sendCmd.Flags().Lookup("api-url"))
	_ = viper.BindPFlag("api_key", sendCmd.Flags().Lookup("api-key"))
	_ = viper.BindPFlag("to", sendCmd.Flags().Lookup("to"))
	_ = viper.BindPFlag("from", sendCmd.Flags().Lookup("from"))
}

func runSend(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	kind, err := digestKind(args)
	if err != nil {
		return err
	}
	dateISO, err := digestDate()
	if err != nil {
		return err
	}

	to := viper.GetString("to")
	from := viper.GetString("from")
	v := validation.NewValidator()
	if errs := append(v.ValidateEmail("to", to), v.ValidateEmail("from", from)...); len(errs) > 0 {
		return fmt.Errorf("%s: %s", errs[0].Field, errs[0].Message)
	}

	d, err := newBuilder().Build(kind, dateISO)
	if err != nil {
		return err
	}

	baseURL := viper.GetString("base_url")
	msg := mailer.Message{
		Subject: d.Subject,
		HTML:    digest.RenderHTML(d, baseURL),
		Text:    digest.RenderText(d, baseURL),
		To:      to,
		From:    from,
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(msg); err != nil {
			return err
		}
		printer.Info("Dry run: payload printed, nothing sent")
		return nil
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	client := mailer.New(viper.GetString("api_url"), viper.GetString("api_key"), timeout, newLogger())

	if err := client.Send(cmd.Context(), msg); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			return fmt.Errorf("%w: set NEWSLETTER_API_URL and NEWSLETTER_API_KEY or pass --api-url and --api-key", err)
		}
		return err
	}

	printer.Success("%s digest for %s sent to %s", kind, dateISO, to)
	return nil
}
