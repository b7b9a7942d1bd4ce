package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/dmitrijs2005/cocreate/internal/filex"
	"github.com/dmitrijs2005/cocreate/internal/netx"
	"github.com/spf13/cobra"
)

// DefaultExportDir receives downloaded exports when --out is not given.
const DefaultExportDir = "exports"

// fetchPresignedURL is swapped in tests.
var fetchPresignedURL = netx.FetchPresignedURL

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		saved  bool
		upload bool
		fetch  bool
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your generations as JSON or Markdown",
		Long: `Export your generations (or only saved ones with --saved).

By default the file is downloaded into ./exports. With --upload the server
stores it in object storage and prints a time-limited download link; add
--fetch to also download the stored object through that link.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.requireSession(ctx); err != nil {
				return err
			}

			if upload {
				up, err := a.client.ExportUpload(ctx, format, saved)
				if err != nil {
					return err
				}
				a.printf("Uploaded %s\n%s\n(link valid until %s)\n", up.Key, up.URL, up.ExpiresAt.Local().Format("2006-01-02 15:04"))
				if !fetch {
					return nil
				}
				body, err := fetchPresignedURL(ctx, nil, up.URL)
				if err != nil {
					return err
				}
				return a.writeExport(outDir, path.Base(up.Key), body)
			}

			file, err := a.client.ExportDownload(ctx, format, saved)
			if err != nil {
				return err
			}
			return a.writeExport(outDir, file.Name, file.Body)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or markdown")
	cmd.Flags().BoolVar(&saved, "saved", false, "export only saved generations")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload to object storage and print a link")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "with --upload, download the stored object")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the downloaded file")
	return cmd
}

func (a *App) writeExport(dir, name string, body []byte) error {
	var err error
	if dir == "" {
		if dir, err = filex.EnsureSubdDir(DefaultExportDir); err != nil {
			return err
		}
	} else if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	p := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(p, body, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	a.printf("Wrote %s (%d bytes)\n", p, len(body))
	return nil
}
