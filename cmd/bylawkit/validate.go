package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/bylaw"
	"github.com/reoring/bylawkit/middleware"
)

type validateFlags struct {
	mode     string
	existing string
	format   string
}

func newValidateCmd(a *app) *cobra.Command {
	f := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a bylaw record file",
		Long: `Validates a JSON or YAML bylaw record and prints the normalized record
with its warnings. Exits 1 when the record has validation issues and 2 when
the file cannot be decoded.

In update mode --existing names the stored record the file is merged onto.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd.Context(), cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.mode, "mode", "create", "create or update")
	cmd.Flags().StringVar(&f.existing, "existing", "", "existing record file (required for update)")
	cmd.Flags().StringVar(&f.format, "format", "", "json or yaml (default: from the file extension)")
	return cmd
}

func (a *app) validate(ctx context.Context, out io.Writer, path string, f *validateFlags) error {
	mode, ok := bylawkit.ParseMode(f.mode)
	if !ok {
		return &exitError{code: 2, err: fmt.Errorf("--mode must be create or update, got %q", f.mode)}
	}
	v := bylaw.NewValidator()

	var existing *bylaw.Record
	if f.existing != "" {
		src, err := a.openSource(f.existing, f.format)
		if err != nil {
			return &exitError{code: 2, err: err}
		}
		prev, err := v.ValidateSource(ctx, src, bylawkit.ModeCreate, nil, a.cfg.ParseOpt())
		if err != nil {
			return &exitError{code: 2, err: fmt.Errorf("existing record %s: %w", f.existing, err)}
		}
		existing = &prev.Record
	}

	src, err := a.openSource(path, f.format)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	res, err := v.ValidateSource(ctx, src, mode, existing, a.cfg.ParseOpt())
	if err != nil {
		if _, ok := bylawkit.AsIssues(err); ok {
			if werr := writeJSON(out, middleware.ErrorPayload(err)); werr != nil {
				return werr
			}
			return &exitError{code: 1}
		}
		return &exitError{code: 2, err: err}
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = bylawkit.Issues{}
	}
	return writeJSON(out, map[string]any{"record": res.Record, "warnings": warnings})
}

// openSource reads path under the configured byte limit and picks the
// decoder from format or the file extension.
func (a *app) openSource(path, format string) (bylawkit.Source, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	b, err := bylawkit.ReadLimited(fh, a.cfg.Parse.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch format {
	case "json":
		return bylawkit.JSONBytes(b), nil
	case "yaml":
		return bylawkit.YAMLBytes(b), nil
	default:
		return nil, fmt.Errorf("--format must be json or yaml, got %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := j.Marshal(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := j.Indent(&buf, b, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}
