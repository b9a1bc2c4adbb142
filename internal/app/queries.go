package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/five82/griddy/internal/config"
	"github.com/five82/griddy/internal/prefs"
	"github.com/five82/griddy/internal/query"
	"github.com/five82/griddy/internal/spreadsheet"
)

// QueriesOptions configure PrintQueries.
type QueriesOptions struct {
	ConfigPath string
	PrefsPath  string
	DocumentID string // empty uses the saved document

	// Flags carries command-line overrides for config keys.
	Flags *pflag.FlagSet
}

// PrintQueries fetches a spreadsheet and writes its distinct queries to w,
// one per line.
func PrintQueries(ctx context.Context, w io.Writer, opts QueriesOptions) error {
	cfg, err := config.Load(opts.ConfigPath, opts.Flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	docID := strings.TrimSpace(opts.DocumentID)
	if docID == "" {
		p, err := prefs.Load(opts.PrefsPath)
		if err != nil {
			return fmt.Errorf("load prefs: %w", err)
		}
		docID = p.DocumentID
	}

	client, err := spreadsheet.NewClient(ctx, spreadsheet.Options{
		APIKey:          cfg.APIKey,
		CredentialsFile: cfg.CredentialsFile,
		Endpoint:        cfg.Endpoint,
	})
	if err != nil {
		return err
	}
	return printQueries(ctx, w, client, docID)
}

func printQueries(ctx context.Context, w io.Writer, f spreadsheet.Fetcher, docID string) error {
	ss, err := f.Fetch(ctx, docID)
	if err != nil {
		return fmt.Errorf("fetch queries: %w", err)
	}
	list := query.FromSpreadsheet(ss)
	if list.Len() == 0 {
		return fmt.Errorf("no queries found in spreadsheet %s", docID)
	}
	for _, q := range list.Items() {
		if _, err := fmt.Fprintln(w, q); err != nil {
			return err
		}
	}
	return nil
}
