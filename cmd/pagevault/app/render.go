package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"github.com/pagevault/pagevault/pkg/catalog"
)

// renderValue writes v in the configured output format. The table format is
// handled by the callers; this covers json and yaml.
func (a *App) renderValue(w io.Writer, v any) error {
	switch strings.ToLower(a.config.Format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return nil
	}
}

// tableFormat reports whether output should be rendered as a table.
func (a *App) tableFormat() bool {
	f := strings.ToLower(a.config.Format)
	return f == "" || f == "table"
}

// renderFiles prints file records as a table, or defers to renderValue.
func (a *App) renderFiles(w io.Writer, store *catalog.Store, files []catalog.File) error {
	if !a.tableFormat() {
		return a.renderValue(w, files)
	}

	if len(files) == 0 {
		fmt.Fprintln(w, "No files found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tTAGS\tMODEL\tACCESS")
	for i := range files {
		f := &files[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			f.ID,
			f.Title,
			a.categoryName(store, f.Category),
			strings.Join(a.tagNames(store, f.Tags), ","),
			a.modelName(store, f.Model),
			f.AccessCount,
		)
	}
	return tw.Flush()
}

// renderFile prints one file record in detail.
func (a *App) renderFile(w io.Writer, store *catalog.Store, f catalog.File) error {
	if !a.tableFormat() {
		return a.renderValue(w, f)
	}

	fmt.Fprintf(w, "ID:            %s\n", f.ID)
	fmt.Fprintf(w, "Title:         %s\n", f.Title)
	if f.Description != "" {
		fmt.Fprintf(w, "Description:   %s\n", f.Description)
	}
	if f.OriginalName != "" {
		fmt.Fprintf(w, "Original name: %s\n", f.OriginalName)
	}
	if f.Category != "" {
		fmt.Fprintf(w, "Category:      %s\n", a.categoryName(store, f.Category))
	}
	if len(f.Tags) > 0 {
		fmt.Fprintf(w, "Tags:          %s\n", strings.Join(a.tagNames(store, f.Tags), ", "))
	}
	if f.Model != "" {
		fmt.Fprintf(w, "Model:         %s\n", a.modelName(store, f.Model))
	}
	fmt.Fprintf(w, "Access count:  %d\n", f.AccessCount)
	fmt.Fprintf(w, "Created:       %s\n", f.CreatedAt.String())
	fmt.Fprintf(w, "Updated:       %s\n", f.UpdatedAt.String())
	return nil
}

// tagNames resolves tag ids to names for display, falling back to the id.
func (a *App) tagNames(store *catalog.Store, ids []catalog.TagID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, err := store.Tag(id); err == nil {
			names = append(names, t.Name)
			continue
		}
		names = append(names, string(id))
	}
	return names
}

// modelName resolves a model id to its name for display.
func (a *App) modelName(store *catalog.Store, id catalog.ModelID) string {
	if id == "" {
		return ""
	}
	if m, err := store.Model(id); err == nil {
		return m.Name
	}
	return string(id)
}

// categoryName resolves a category id to its name for display.
func (a *App) categoryName(store *catalog.Store, id catalog.CategoryID) string {
	if id == "" {
		return ""
	}
	if c, err := store.Category(id); err == nil {
		return c.Name
	}
	return string(id)
}
