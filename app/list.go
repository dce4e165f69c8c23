package app

import (
	"strconv"

	"github.com/spf13/cobra"

	"mtg-labels/models"
	"mtg-labels/output"
	"mtg-labels/service"
	"mtg-labels/utils"
)

var listCmd = &cobra.Command{
	Use:     "list [SET...]",
	Aliases: []string{"ls"},
	Short:   "List the sets a run would print",
	Long: `List the sets that pass the filter, oldest first, with the name that
would appear on the label. Nothing is downloaded or rendered.

Examples:
  mtglabels list               # Sets selected by the default filter
  mtglabels list lea mh3       # Only the given set codes`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := newPrinter(cmd)

	services, err := newServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	selection, err := services.Labels.Plan(ctx, cfg.FilterFor(utils.NormalizeCodes(args)))
	if err != nil {
		return err
	}

	for _, code := range selection.UnknownCodes {
		printer.Warning("Unknown set code: %s", code)
	}
	if len(selection.Sets) == 0 {
		printer.Warning("No sets matched")
		return nil
	}

	table := output.NewTable(printer.Out(), []string{"CODE", "LABEL", "RELEASED", "TYPE", "CARDS"})
	for _, set := range selection.Sets {
		table.AddRow(setRow(set))
	}
	if err := table.Render(); err != nil {
		return err
	}
	printer.Info("%d set(s)", len(selection.Sets))
	return nil
}

func setRow(set models.SetRecord) []string {
	released := ""
	if !set.Released.IsZero() {
		released = set.Released.Format(models.ReleaseDateLayout)
	}
	return []string{
		utils.NormalizeCode(set.Code),
		service.DisplayName(set.Name),
		released,
		set.SetType,
		strconv.Itoa(set.CardCount),
	}
}
