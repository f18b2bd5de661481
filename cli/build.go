package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"hrslides/app"
	"hrslides/i18n"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Output     string
	Handout    bool
	PreviewDir string
	Width      int
	Watch      bool
}

func newBuildCmd(e *env) *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build <plan>",
		Short: "Build a deck from a plan file",
		Long: `Build a PowerPoint deck from a JSON or YAML plan.

The plan is validated first; every problem is reported with its slide number,
layout and key, and nothing is written until the plan is valid.`,
		Example: `  # Build next to the configured output directory
  hrslides build gpec.json

  # Choose the output and write a PDF handout with the speaker notes
  hrslides build gpec.yaml -o decks/gpec.pptx --handout

  # Rebuild on every save
  hrslides build gpec.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, e, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "deck file to write")
	cmd.Flags().BoolVar(&opts.Handout, "handout", false, "also write a PDF handout")
	cmd.Flags().StringVar(&opts.PreviewDir, "preview", "", "directory for PNG previews of each slide")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "preview width in pixels (default from config)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "rebuild whenever the plan changes")

	return cmd
}

func runBuild(cmd *cobra.Command, e *env, planPath string, opts *BuildOptions) error {
	out := cmd.OutOrStdout()
	buildOpts := app.BuildOptions{
		Output:       opts.Output,
		Handout:      opts.Handout,
		PreviewDir:   opts.PreviewDir,
		PreviewWidth: opts.Width,
	}

	build := func(ctx context.Context) error {
		res, err := e.app.Deck.Build(ctx, planPath, buildOpts)
		if err != nil {
			return err
		}
		printBuild(out, res)
		return nil
	}

	if !opts.Watch {
		return build(cmd.Context())
	}

	if err := build(cmd.Context()); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	w, err := newPlanWatcher(planPath)
	if err != nil {
		return err
	}
	defer w.Close()

	var mu sync.Mutex
	_, _ = fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", planPath)
	return w.Run(cmd.Context(), func() {
		mu.Lock()
		defer mu.Unlock()
		if err := build(cmd.Context()); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}, func(err error) {
		e.log.Logf("[WATCH] %v", err)
	})
}

func printBuild(w io.Writer, res *app.BuildResult) {
	_, _ = fmt.Fprintln(w, i18n.T("build.done", res.Output, res.Slides, res.Bytes, shortDuration(res.Duration)))
	if res.Handout != "" {
		_, _ = fmt.Fprintln(w, i18n.T("build.handout", res.Handout))
	}
	if len(res.Previews) > 0 {
		_, _ = fmt.Fprintln(w, i18n.T("build.preview", len(res.Previews), filepath.Dir(res.Previews[0])))
	}
	if res.ID != "" {
		_, _ = fmt.Fprintln(w, i18n.T("build.recorded", res.ID))
	}
	for _, warn := range res.Warnings {
		_, _ = fmt.Fprintln(w, warn)
	}
}
