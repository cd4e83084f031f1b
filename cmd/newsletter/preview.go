package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selah-content-api/internal/digest"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/output"
)

var previewCmd = &cobra.Command{
	Use:   "preview [daily|weekly]",
	Short: "Render a digest to the terminal",
	Long: `Render the digest for the given date without sending anything.

The default view is a summary table. --text and --html print the exact
email bodies the send command would deliver.

Examples:
  newsletter preview                         # Today's daily digest
  newsletter preview weekly                  # The week ending today
  newsletter preview --date 2025-08-11 --text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Bool("text", false, "print the plain-text email body")
	previewCmd.Flags().Bool("html", false, "print the HTML email body")
	previewCmd.MarkFlagsMutuallyExclusive("text", "html")
}

func runPreview(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	kind, err := digestKind(args)
	if err != nil {
		return err
	}
	dateISO, err := digestDate()
	if err != nil {
		return err
	}

	d, err := newBuilder().Build(kind, dateISO)
	if err != nil {
		return err
	}

	baseURL := viper.GetString("base_url")
	if asText, _ := cmd.Flags().GetBool("text"); asText {
		fmt.Fprintln(cmd.OutOrStdout(), digest.RenderText(d, baseURL))
		return nil
	}
	if asHTML, _ := cmd.Flags().GetBool("html"); asHTML {
		fmt.Fprintln(cmd.OutOrStdout(), digest.RenderHTML(d, baseURL))
		return nil
	}

	printer.Header(d.Subject)
	if r := d.Reflection; r != nil {
		printer.Info("Reflection: %s (%s)", r.Title, r.Theme)
	}
	printer.Print("")

	table := output.NewTable(cmd.OutOrStdout(), []string{"DATE", "TOPIC", "TITLE", "ID"})
	for _, a := range d.Articles {
		table.AddRow(a.DateISO, a.Topic, a.Title, printer.Dim(a.ID))
	}
	table.Render()
	printer.Print("")

	if kind == models.DigestWeekly {
		printer.Info("%d articles, week ending %s", len(d.Articles), dateISO)
	} else {
		printer.Info("%d articles for %s", len(d.Articles), dateISO)
	}
	return nil
}
