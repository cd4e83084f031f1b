package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/digest"
	"github.com/selah-content-api/internal/output"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topic and theme registries",
	Long: `List the built-in content registries: the topics articles rotate
through and the themes reflections draw from.

Examples:
  newsletter topics            # Human-readable tables
  newsletter topics --json     # Machine-readable listing`,
	Args: cobra.NoArgs,
	RunE: runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)

	topicsCmd.Flags().Bool("json", false, "output as JSON")
}

type topicRow struct {
	Key          string `json:"key"`
	Display      string `json:"display"`
	ImageKeyword string `json:"image_keyword"`
}

type themeRow struct {
	Key     string `json:"key"`
	Display string `json:"display"`
}

func runTopics(cmd *cobra.Command, args []string) error {
	reg := content.Default()

	topics := make([]topicRow, 0, len(reg.Topics()))
	for _, key := range reg.Topics() {
		tp, _ := reg.Topic(key)
		topics = append(topics, topicRow{Key: key, Display: tp.Display, ImageKeyword: tp.ImageKeyword})
	}
	themes := make([]themeRow, 0, len(reg.Themes()))
	for _, key := range reg.Themes() {
		th, _ := reg.Theme(key)
		themes = append(themes, themeRow{Key: key, Display: th.Display})
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"topics": topics,
			"themes": themes,
		})
	}

	printer := newPrinter(cmd)

	printer.Header("Topics")
	topicTable := output.NewTable(cmd.OutOrStdout(), []string{"KEY", "DISPLAY", "IMAGE KEYWORD"})
	for _, row := range topics {
		topicTable.AddRow(printer.Bold(row.Key), row.Display, row.ImageKeyword)
	}
	topicTable.Render()

	printer.Header("Themes")
	themeTable := output.NewTable(cmd.OutOrStdout(), []string{"KEY", "DISPLAY"})
	for _, row := range themes {
		themeTable.AddRow(printer.Bold(row.Key), row.Display)
	}
	themeTable.Render()

	printer.Print("")
	printer.Info("Daily digests carry a %s reflection, weekly digests %s.", digest.DailyTheme, digest.WeeklyTheme)
	return nil
}
