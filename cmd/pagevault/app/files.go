package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagevault/pagevault/pkg/catalog"
	"github.com/pagevault/pagevault/pkg/errors"
)

// NewIngestCommand creates the ingest command.
func (a *App) NewIngestCommand() *cobra.Command {
	var (
		title       string
		description string
		background  string
		prompt      string
		categoryArg string
		modelArg    string
		tagArgs     []string
	)

	cmd := &cobra.Command{
		Use:     "ingest <file.html>",
		Short:   "Store an HTML file and catalog it",
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}
			store := client.Catalog()

			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return errors.WrapIO("read", path, err)
			}

			meta := catalog.FileMeta{
				Title:          title,
				Description:    description,
				BackgroundText: background,
				PromptText:     prompt,
				OriginalName:   filepath.Base(path),
			}
			if meta.Title == "" {
				meta.Title = filepath.Base(path)
			}

			if categoryArg != "" {
				id, err := resolveCategory(store, categoryArg)
				if err != nil {
					return err
				}
				meta.Category = id
			}
			if modelArg != "" {
				id, err := resolveModel(store, modelArg)
				if err != nil {
					return err
				}
				meta.Model = id
			}
			for _, arg := range tagArgs {
				id, err := resolveTag(store, arg)
				if err != nil {
					return err
				}
				meta.Tags = append(meta.Tags, id)
			}

			file, err := client.Ingest(cmd.Context(), content, meta)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s as %s\n", path, file.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "file title (defaults to the file name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "file description")
	cmd.Flags().StringVar(&background, "background", "", "background text for search")
	cmd.Flags().StringVar(&prompt, "prompt", "", "prompt text for search")
	cmd.Flags().StringVarP(&categoryArg, "category", "c", "", "category name or id")
	cmd.Flags().StringVarP(&modelArg, "model", "m", "", "model name or id")
	cmd.Flags().StringSliceVar(&tagArgs, "tag", nil, "tag name or id (repeatable)")

	return cmd
}

// NewListCommand creates the list command.
func (a *App) NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all active files",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}
			return a.renderFiles(cmd.OutOrStdout(), store, store.Files())
		},
	}
}

// NewSearchCommand creates the search command.
func (a *App) NewSearchCommand() *cobra.Command {
	var (
		categoryArg string
		modelArg    string
		tagArgs     []string
	)

	cmd := &cobra.Command{
		Use:     "search [keywords...]",
		Short:   "Search files by keywords and filters",
		GroupID: "core",
		Long: `Search matches files against keywords and optional category, tag, and
model filters. Keywords are matched against the file's title, description,
original name, background text, prompt text, and category name. The
wildcards * (any run of characters) and ? (exactly one character) match
whole words.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}

			var filter catalog.Filter
			if len(args) > 0 {
				filter.Text = strings.Join(args, " ")
			}
			if categoryArg != "" {
				id, err := resolveCategory(store, categoryArg)
				if err != nil {
					return err
				}
				filter.Category = id
			}
			if modelArg != "" {
				id, err := resolveModel(store, modelArg)
				if err != nil {
					return err
				}
				filter.Model = id
			}
			for _, arg := range tagArgs {
				id, err := resolveTag(store, arg)
				if err != nil {
					return err
				}
				filter.Tags = append(filter.Tags, id)
			}

			return a.renderFiles(cmd.OutOrStdout(), store, store.Search(filter))
		},
	}

	cmd.Flags().StringVarP(&categoryArg, "category", "c", "", "filter by category name or id")
	cmd.Flags().StringVarP(&modelArg, "model", "m", "", "filter by model name or id")
	cmd.Flags().StringSliceVar(&tagArgs, "tag", nil, "filter by tag name or id (repeatable, matches any)")

	return cmd
}

// NewShowCommand creates the show command.
func (a *App) NewShowCommand() *cobra.Command {
	var peek bool

	cmd := &cobra.Command{
		Use:     "show <id>",
		Short:   "Show a file record",
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}

			id := catalog.FileID(args[0])
			var file catalog.File
			if peek {
				file, err = store.PeekFile(id)
			} else {
				file, err = store.GetFile(id)
			}
			if err != nil {
				return err
			}

			return a.renderFile(cmd.OutOrStdout(), store, file)
		},
	}

	cmd.Flags().BoolVar(&peek, "peek", false, "do not record the access")

	return cmd
}

// NewContentCommand creates the content command.
func (a *App) NewContentCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "content <id>",
		Short:   "Print the stored HTML content of a file",
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			content, err := client.Content(cmd.Context(), catalog.FileID(args[0]))
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}
}

// NewUpdateCommand creates the update command.
func (a *App) NewUpdateCommand() *cobra.Command {
	var (
		title       string
		description string
		background  string
		prompt      string
		categoryArg string
		modelArg    string
		tagArgs     []string
		clearTags   bool
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a file record's metadata",
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.Catalog()
			if err != nil {
				return err
			}

			var patch catalog.FilePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("background") {
				patch.BackgroundText = &background
			}
			if cmd.Flags().Changed("prompt") {
				patch.PromptText = &prompt
			}
			if cmd.Flags().Changed("category") {
				id := catalog.CategoryID("")
				if categoryArg != "" {
					id, err = resolveCategory(store, categoryArg)
					if err != nil {
						return err
					}
				}
				patch.Category = &id
			}
			if cmd.Flags().Changed("model") {
				id := catalog.ModelID("")
				if modelArg != "" {
					id, err = resolveModel(store, modelArg)
					if err != nil {
						return err
					}
				}
				patch.Model = &id
			}
			switch {
			case clearTags:
				patch.Tags = []catalog.TagID{}
			case len(tagArgs) > 0:
				for _, arg := range tagArgs {
					id, err := resolveTag(store, arg)
					if err != nil {
						return err
					}
					patch.Tags = append(patch.Tags, id)
				}
			}

			file, err := store.UpdateFile(catalog.FileID(args[0]), patch)
			if err != nil {
				return err
			}

			return a.renderFile(cmd.OutOrStdout(), store, file)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&background, "background", "", "new background text")
	cmd.Flags().StringVar(&prompt, "prompt", "", "new prompt text")
	cmd.Flags().StringVarP(&categoryArg, "category", "c", "", "new category name or id (empty clears)")
	cmd.Flags().StringVarP(&modelArg, "model", "m", "", "new model name or id (empty clears)")
	cmd.Flags().StringSliceVar(&tagArgs, "tag", nil, "replacement tag set (repeatable)")
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "remove all tags")

	return cmd
}

// NewRemoveCommand creates the remove command.
func (a *App) NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Short:   "Remove a file from the catalog",
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			id := catalog.FileID(args[0])
			if err := client.Remove(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			return nil
		},
	}
}

// resolveTag accepts a tag id or name and returns the id.
func resolveTag(store *catalog.Store, arg string) (catalog.TagID, error) {
	if t, err := store.Tag(catalog.TagID(arg)); err == nil {
		return t.ID, nil
	}
	for _, t := range store.Tags() {
		if t.Name == arg {
			return t.ID, nil
		}
	}
	return "", errors.NewNotFoundError("tag", arg)
}

// resolveModel accepts a model id or name and returns the id.
func resolveModel(store *catalog.Store, arg string) (catalog.ModelID, error) {
	if m, err := store.Model(catalog.ModelID(arg)); err == nil {
		return m.ID, nil
	}
	for _, m := range store.Models() {
		if m.Name == arg {
			return m.ID, nil
		}
	}
	return "", errors.NewNotFoundError("model", arg)
}

// resolveCategory accepts a category id or name and returns the id.
func resolveCategory(store *catalog.Store, arg string) (catalog.CategoryID, error) {
	if c, err := store.Category(catalog.CategoryID(arg)); err == nil {
		return c.ID, nil
	}
	for _, c := range store.Categories() {
		if c.Name == arg {
			return c.ID, nil
		}
	}
	return "", errors.NewNotFoundError("category", arg)
}
