// Package media provides the media extension: store local files or remote
// URLs in the catalog's media directory and optionally point an entity's
// image at the result.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jpl-au/entlog/cmd"
	"github.com/jpl-au/entlog/extension"
	"github.com/jpl-au/entlog/internal/edit"
	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/media"
	"github.com/jpl-au/entlog/internal/progress"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the media extension.
type Extension struct {
	svc   service.Service
	store *media.Store
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "media".
func (e *Extension) Name() string { return "media" }

// Init builds the media store over the catalog's media directory.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.store = media.NewStore(e.svc.MediaDir(), ctx.Config().MaxUpload())
	return nil
}

// Commands returns the media command.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "media",
		Short: "Store images and videos for entities",
		Long: `Copy files into the catalog's media directory. The HTTP API serves them
under /media/<name>.

  entlog media add ./logo.png --entity 3
  entlog media fetch https://example.com/logo.png`,
	}
	c.AddCommand(e.newAddCmd(), e.newFetchCmd())
	return []*cobra.Command{c}
}

// MCPTools returns nil.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <file>",
		Short: "Store a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			url, err := e.save(args[0])
			log.Event("media:add", "upload").Author(cmd.Author()).Detail("file", filepath.Base(args[0])).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("media add: %w", err))
			}
			return e.finish(c, url)
		},
	}
	c.Flags().Int64(extension.FlagEntity, 0, "Set this entity's image to the stored file")
	return c
}

func (e *Extension) save(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return e.store.Save(filepath.Base(path), f)
}

func (e *Extension) newFetchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a remote image or video",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg := e.svc.Config()
			fetcher := media.NewFetcher(e.store, media.FetcherConfig{Timeout: cfg.FetchTimeout()})

			url, err := fetchWithSpinner(c.Context(), fetcher, args[0])
			log.Event("media:fetch", "fetch").Author(cmd.Author()).Detail("url", args[0]).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("media fetch: %w", err))
			}
			return e.finish(c, url)
		},
	}
	c.Flags().Int64(extension.FlagEntity, 0, "Set this entity's image to the stored file")
	return c
}

func fetchWithSpinner(ctx context.Context, f *media.Fetcher, rawURL string) (string, error) {
	type fetched struct {
		url string
		err error
	}
	done := make(chan fetched, 1)
	go func() {
		url, err := f.Fetch(ctx, rawURL)
		done <- fetched{url, err}
	}()

	spin := progress.NewSpinner("Fetching")
	spin.Start()
	defer spin.Stop()

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case r := <-done:
			return r.url, r.err
		case <-tick.C:
			spin.Tick()
		}
	}
}

// finish prints the stored URL and, with --entity, sets that entity's image.
func (e *Extension) finish(c *cobra.Command, url string) error {
	id, _ := c.Flags().GetInt64(extension.FlagEntity)
	if id > 0 {
		_, err := edit.Run(c.Context(), io.Discard, e.svc, id, edit.Changes{ImageURL: &url}, edit.Options{})
		log.Event("media:attach", "update").Author(cmd.Author()).Entity(id).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("set image of %d: %w", id, err))
		}
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"url": url, "entity": id})
	}
	fmt.Fprintln(cmd.Out(), url)
	return nil
}
