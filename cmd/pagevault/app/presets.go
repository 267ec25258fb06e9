package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pagevault/pagevault/pkg/catalog"
)

// NewTagCommand creates the tag management command group.
func (a *App) NewTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Short:   "Manage tags",
		GroupID: "presets",
	}

	var description, color string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			tag, err := store.CreateTag(args[0], description, color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created tag %q (%s)\n", tag.Name, tag.ID)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&description, "description", "d", "", "tag description")
	addCmd.Flags().StringVar(&color, "color", "", "display color, e.g. #3366ff")

	renameCmd := &cobra.Command{
		Use:   "rename <name-or-id> <new-name>",
		Short: "Rename a tag",
		Long: `Rename changes the tag's name everywhere at once. File records reference
tags by id, so no file is rewritten and search by the new name works
immediately.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			id, err := resolveTag(store, args[0])
			if err != nil {
				return err
			}
			tag, err := store.RenameTag(id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed tag to %q\n", tag.Name)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name-or-id>",
		Short: "Delete an unused tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			id, err := resolveTag(store, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteTag(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tags with usage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			tags := store.Tags()
			if !a.tableFormat() {
				return a.renderValue(cmd.OutOrStdout(), tags)
			}
			usage := store.Stats().TagUsage
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tUSAGE")
			for _, t := range tags {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", t.ID, t.Name, usage[t.ID])
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(addCmd, renameCmd, rmCmd, listCmd)
	return cmd
}

// NewModelCommand creates the model management command group.
func (a *App) NewModelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "model",
		Short:   "Manage AI model presets",
		GroupID: "presets",
	}

	var description, version string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a model preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			model, err := store.CreateModel(args[0], description, version)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created model %q (%s)\n", model.Name, model.ID)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&description, "description", "d", "", "model description")
	addCmd.Flags().StringVar(&version, "version", "", "model version")

	renameCmd := &cobra.Command{
		Use:   "rename <name-or-id> <new-name>",
		Short: "Rename a model preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			id, err := resolveModel(store, args[0])
			if err != nil {
				return err
			}
			model, err := store.RenameModel(id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed model to %q\n", model.Name)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name-or-id>",
		Short: "Delete an unused model preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			id, err := resolveModel(store, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteModel(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted model %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List model presets with usage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			models := store.Models()
			if !a.tableFormat() {
				return a.renderValue(cmd.OutOrStdout(), models)
			}
			usage := store.Stats().ModelUsage
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVERSION\tUSAGE")
			for _, m := range models {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", m.ID, m.Name, m.Version, usage[m.ID])
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(addCmd, renameCmd, rmCmd, listCmd)
	return cmd
}

// NewCategoryCommand creates the category management command group.
func (a *App) NewCategoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Short:   "Manage categories",
		GroupID: "presets",
	}

	var description string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			category, err := store.CreateCategory(args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %q (%s)\n", category.Name, category.ID)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&description, "description", "d", "", "category description")

	renameCmd := &cobra.Command{
		Use:   "rename <name-or-id> <new-name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			id, err := resolveCategory(store, args[0])
			if err != nil {
				return err
			}
			category, err := store.RenameCategory(id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed category to %q\n", category.Name)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name-or-id>",
		Short: "Delete an unused category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			id, err := resolveCategory(store, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteCategory(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with usage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			categories := store.Categories()
			if !a.tableFormat() {
				return a.renderValue(cmd.OutOrStdout(), categories)
			}
			usage := store.Stats().CategoryUsage
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tUSAGE")
			for _, c := range categories {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", c.ID, c.Name, usage[c.ID])
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(addCmd, renameCmd, rmCmd, listCmd)
	return cmd
}

// NewStatsCommand creates the stats command.
func (a *App) NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Short:   "Show catalog statistics",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			stats := store.Stats()
			if !a.tableFormat() {
				return a.renderValue(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Files:      %d\n", stats.TotalFiles)
			fmt.Fprintf(out, "Tags:       %d\n", stats.TotalTags)
			fmt.Fprintf(out, "Models:     %d\n", stats.TotalModels)
			fmt.Fprintf(out, "Categories: %d\n", stats.TotalCategories)

			printUsage(out, "Tag usage:", tagUsageRows(store, stats))
			printUsage(out, "Model usage:", modelUsageRows(store, stats))
			printUsage(out, "Category usage:", categoryUsageRows(store, stats))
			return nil
		},
	}
}

// usageRow pairs a preset name with its live reference count.
type usageRow struct {
	name  string
	count int
}

func tagUsageRows(store *catalog.Store, stats catalog.Stats) []usageRow {
	rows := make([]usageRow, 0, len(stats.TagUsage))
	for _, t := range store.Tags() {
		rows = append(rows, usageRow{name: t.Name, count: stats.TagUsage[t.ID]})
	}
	return rows
}

func modelUsageRows(store *catalog.Store, stats catalog.Stats) []usageRow {
	rows := make([]usageRow, 0, len(stats.ModelUsage))
	for _, m := range store.Models() {
		rows = append(rows, usageRow{name: m.Name, count: stats.ModelUsage[m.ID]})
	}
	return rows
}

func categoryUsageRows(store *catalog.Store, stats catalog.Stats) []usageRow {
	rows := make([]usageRow, 0, len(stats.CategoryUsage))
	for _, c := range store.Categories() {
		rows = append(rows, usageRow{name: c.Name, count: stats.CategoryUsage[c.ID]})
	}
	return rows
}

func printUsage(w io.Writer, title string, rows []usageRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, row := range rows {
		fmt.Fprintf(w, "  %-24s %d\n", row.name, row.count)
	}
}
