// add.go implements "entlog add".

package entity

import (
	"fmt"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/edit"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <type> <name> <locator>",
		Short: "Add an entity",
		Long: `Add an entity to the catalog and print its id.

  entlog add website "Foo" https://foo.example --tag web --tag demo
  entlog add service api 10.0.0.5:8080 -d "internal API" --attr owner=ops

Tags are trimmed and deduplicated. New tags are registered automatically.`,
		Args: cobra.ExactArgs(3),
		RunE: e.runAdd,
	}
	c.Flags().StringP(extension.FlagDescription, "d", "", "Description")
	c.Flags().String(extension.FlagImage, "", "Image or media URL")
	c.Flags().StringArrayP(extension.FlagTag, "t", nil, "Tag (repeatable)")
	c.Flags().StringArray(extension.FlagAttr, nil, "Attribute as key=description (repeatable)")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	desc, _ := c.Flags().GetString(extension.FlagDescription)
	image, _ := c.Flags().GetString(extension.FlagImage)
	tags, _ := c.Flags().GetStringArray(extension.FlagTag)
	attrs, _ := c.Flags().GetStringArray(extension.FlagAttr)

	in := store.EntityInput{
		EntityType:  args[0],
		Name:        args[1],
		Locator:     args[2],
		Description: desc,
		ImageURL:    image,
		Tags:        tags,
	}
	if err := edit.Apply(&in, edit.Changes{SetAttrs: attrs}); err != nil {
		return cmd.PrintJSONError(err)
	}

	ent, err := e.svc.CreateEntity(c.Context(), in)

	b := log.Event("entity:add", "create").Author(cmd.Author())
	if ent != nil {
		b = b.Entity(ent.ID)
	}
	b.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(ent.ToJSON())
	}
	fmt.Fprintf(cmd.Out(), "Added entity %d (%s)\n", ent.ID, ent.Name)
	return nil
}
