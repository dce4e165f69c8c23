package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mtg-labels/models"
	"mtg-labels/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently generated sheets",
	Long: `Show the sheets recorded by previous runs, newest first.

Needs database.url (or DATABASE_URL / DB_* variables) to be configured.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "number of sheets to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := newPrinter(cmd)
	limit, _ := cmd.Flags().GetInt("limit")

	services, err := newServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	if services.Sheets == nil {
		return fmt.Errorf("%w: sheet history needs database.url or DATABASE_URL", models.ErrConfiguration)
	}

	sheets, err := services.Sheets.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("listing sheets: %w", err)
	}
	if len(sheets) == 0 {
		printer.Info("No sheets recorded yet")
		return nil
	}

	table := output.NewTable(printer.Out(), []string{"ID", "CREATED", "PAPER", "PAGE", "SETS", "FILE"})
	for _, sheet := range sheets {
		file := sheet.PDFPath
		if file == "" {
			file = sheet.SVGPath
		}
		table.AddRow([]string{
			strconv.FormatInt(sheet.ID, 10),
			sheet.CreatedAt.Local().Format("2006-01-02 15:04"),
			sheet.PaperSize,
			strconv.Itoa(sheet.Page),
			strings.Join(sheet.SetCodes, " "),
			file,
		})
	}
	return table.Render()
}
