// show.go implements "entlog show".
//
// Terminal output gets glamour rendering; pipe/redirect gets raw markdown.

package entity

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/show"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an entity",
		Long:  `Print one entity with its tags and attributes as markdown.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	var ent *store.Entity
	defer func() {
		log.Event("entity:show", "read").Author(cmd.Author()).Entity(id).Write(err)
	}()

	if cmd.JSON() {
		ent, err = show.Run(c.Context(), io.Discard, e.svc, id)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("show %d: %w", id, err))
		}
		return cmd.PrintJSON(ent.ToJSON())
	}

	var buf bytes.Buffer
	ent, err = show.Run(c.Context(), &buf, e.svc, id)
	if err != nil {
		return fmt.Errorf("show %d: %w", id, err)
	}

	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, renderErr := glamour.Render(buf.String(), "dark"); renderErr == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	_, err = io.Copy(cmd.Out(), &buf)
	return err
}
