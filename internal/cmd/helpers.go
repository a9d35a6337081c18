package cmd

import (
	"fmt"
	"strings"

	"github.com/jfplabs/jfp/internal/content"
	"github.com/jfplabs/jfp/internal/output"
)

// renderItems writes items in the selected format. Text mode gets a compact
// human listing; json/yaml emit the raw items.
func (a *app) renderItems(items []content.Item) error {
	w, err := a.writer()
	if err != nil {
		return err
	}

	if w.Format() != output.FormatText {
		return w.Write(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.stdout, "no items")
		return nil
	}

	for _, item := range items {
		fmt.Fprintf(a.stdout, "%s  %s  %s\n",
			styleName.Render(item.ID),
			styleCategory.Render(item.Category),
			item.Name)
		fmt.Fprintf(a.stdout, "    %s\n", styleURL.Render(item.URL))
	}
	return nil
}

// renderItem writes a single item in detail.
func (a *app) renderItem(item content.Item) error {
	w, err := a.writer()
	if err != nil {
		return err
	}

	if w.Format() != output.FormatText {
		return w.Write(item)
	}

	fmt.Fprintln(a.stdout, styleHeading.Render(item.Name))
	fmt.Fprintf(a.stdout, "id:       %s\n", item.ID)
	fmt.Fprintf(a.stdout, "url:      %s\n", item.URL)
	fmt.Fprintf(a.stdout, "category: %s\n", item.Category)
	if len(item.Tags) > 0 {
		fmt.Fprintf(a.stdout, "tags:     %s\n", strings.Join(item.Tags, ", "))
	}
	if item.Description != "" {
		fmt.Fprintf(a.stdout, "\n%s\n", item.Description)
	}
	return nil
}

// renderNames writes a plain list of names (categories, tags).
func (a *app) renderNames(names []string) error {
	w, err := a.writer()
	if err != nil {
		return err
	}

	if w.Format() != output.FormatText {
		return w.Write(names)
	}

	for _, name := range names {
		fmt.Fprintln(a.stdout, name)
	}
	return nil
}
