// Package cli implements the filedock inspection tool: it builds a file
// record from a local file or a remote URL and prints the resulting
// metadata document.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/filedock"
	"github.com/dmitrijs2005/filedock/internal/config"
	"github.com/dmitrijs2005/filedock/internal/flagx"
	"github.com/dmitrijs2005/filedock/internal/logging"
)

type App struct {
	cfg *config.Config
	log logging.Logger
	out io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger, out io.Writer) *App {
	return &App{cfg: cfg, log: log, out: out}
}

// Run inspects the target given via -file or -url and prints its document.
func (a *App) Run(ctx context.Context) error {
	var file, url string

	args := flagx.FilterArgs(os.Args[1:], []string{"-file", "-url"})
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.StringVar(&file, "file", "", "path of a local file to inspect")
	fs.StringVar(&url, "url", "", "remote URL to inspect (HEAD request)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case file != "":
		return a.inspectFile(ctx, file)
	case url != "":
		return a.inspectURL(ctx, url)
	default:
		return fmt.Errorf("nothing to inspect: pass -file or -url")
	}
}

func (a *App) inspectFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := filedock.NewFileData(f)
	if err != nil {
		return err
	}

	rec, err := filedock.FromData(data, a.options()...)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "inspected local file", "name", rec.Name(), "size", rec.Size())
	return a.print(rec)
}

func (a *App) inspectURL(ctx context.Context, url string) error {
	rec, err := filedock.FromURL(ctx, url, append(a.options(), filedock.WithFetcher(http.DefaultClient))...)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "inspected remote url", "name", rec.Name(), "size", rec.Size())
	return a.print(rec)
}

func (a *App) options() []filedock.Option {
	return []filedock.Option{
		filedock.WithEndpoints(filedock.Endpoints{
			UploadPath:     a.cfg.UploadEndpoint,
			DownloadPrefix: a.cfg.DownloadEndpoint,
		}),
		filedock.WithChunkSize(a.cfg.ChunkSize),
		filedock.WithLogger(a.log),
	}
}

// print renders the document plus the derived fields callers usually care
// about.
func (a *App) print(rec *filedock.FileRecord) error {
	out := struct {
		Document  *filedock.Document `json:"document"`
		Extension string             `json:"extension,omitempty"`
		IsAudio   bool               `json:"isAudio"`
		IsImage   bool               `json:"isImage"`
		IsVideo   bool               `json:"isVideo"`
	}{
		Document:  rec.Document(),
		Extension: rec.Extension(),
		IsAudio:   rec.IsAudio(),
		IsImage:   rec.IsImage(),
		IsVideo:   rec.IsVideo(),
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
