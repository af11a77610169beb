// edit.go implements "entlog edit".
//
// Only flags the user passes change the entity. The before/after diff is
// printed in colour on a terminal.

package entity

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/edit"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an entity",
		Long: `Change selected fields of an entity, leaving the rest as they are.

  entlog edit 3 --name "Foo v2"
  entlog edit 3 --add-tag prod --rm-tag staging
  entlog edit 3 --tags web,demo        # replace the whole tag set
  entlog edit 3 --attr port=443 --rm-attr legacy

Attributes keep their creation time when edited.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runEdit,
	}
	f := c.Flags()
	f.String(extension.FlagType, "", "Entity type")
	f.String(extension.FlagName, "", "Name")
	f.String(extension.FlagLocator, "", "Locator")
	f.StringP(extension.FlagDescription, "d", "", "Description")
	f.String(extension.FlagImage, "", "Image or media URL")
	f.StringSlice(extension.FlagTags, nil, "Replace all tags (comma separated)")
	f.StringArray(extension.FlagAddTag, nil, "Add a tag (repeatable)")
	f.StringArray(extension.FlagRmTag, nil, "Remove a tag (repeatable)")
	f.StringArray(extension.FlagAttr, nil, "Set attribute key=description (repeatable)")
	f.StringArray(extension.FlagRmAttr, nil, "Remove attribute by key (repeatable)")
	return c
}

// changes reads the edit flags. String flags count only when passed, so an
// explicit empty value clears optional fields.
func changes(c *cobra.Command) edit.Changes {
	f := c.Flags()
	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	arr := func(name string) []string {
		v, _ := f.GetStringArray(name)
		return v
	}

	ch := edit.Changes{
		EntityType:  str(extension.FlagType),
		Name:        str(extension.FlagName),
		Locator:     str(extension.FlagLocator),
		Description: str(extension.FlagDescription),
		ImageURL:    str(extension.FlagImage),
		AddTags:     arr(extension.FlagAddTag),
		RmTags:      arr(extension.FlagRmTag),
		SetAttrs:    arr(extension.FlagAttr),
		RmAttrs:     arr(extension.FlagRmAttr),
	}
	if f.Changed(extension.FlagTags) {
		tags, _ := f.GetStringSlice(extension.FlagTags)
		ch.Tags = append([]string{}, tags...)
	}
	return ch
}

func (e *Extension) runEdit(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	colour := !cmd.JSON() && term.IsTerminal(int(os.Stdout.Fd()))

	result, err := edit.Run(c.Context(), w, e.svc, id, changes(c), edit.Options{Colour: colour})

	log.Event("entity:edit", "update").
		Author(cmd.Author()).
		Entity(id).
		Detail("changed", result.Diff.Changed()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("edit %d: %w", id, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result.After.ToJSON())
	}
	return nil
}
