package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/timelog/pkg/server"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr      string
	UploadDir string
	NoSave    bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(g *GlobalOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload and JSON web service",
		Long: `Run an HTTP server for parsing time logs.

Routes:
  GET  /               Upload form
  POST /               Multipart upload (field "file"), HTML results
  POST /parse_timelog  JSON {"filename": ..., "timelog": [lines]}
  GET  /health         Liveness check

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address, overrides server.addr")
	cmd.Flags().StringVar(&opts.UploadDir, "upload-dir", "", "Directory for saved uploads, overrides server.upload_dir")
	cmd.Flags().BoolVar(&opts.NoSave, "no-save", false, "Do not keep copies of uploaded logs")

	return cmd
}

func runServe(cmd *cobra.Command, g *GlobalOptions, opts *ServeOptions) error {
	ctx, cfg, log, err := g.setup(cmd)
	if err != nil {
		return err
	}

	sopts := server.OptionsFromConfig(cfg)
	if opts.Addr != "" {
		sopts.Addr = opts.Addr
	}
	if opts.UploadDir != "" {
		sopts.UploadDir = opts.UploadDir
	}
	if opts.NoSave {
		sopts.SaveUploads = false
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(sopts, log).Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
