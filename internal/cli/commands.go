package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Akaiko1/image-viewer/internal/browser"
	"github.com/Akaiko1/image-viewer/internal/events"
	"github.com/Akaiko1/image-viewer/internal/renderer"
	"github.com/Akaiko1/image-viewer/internal/scanner"
)

func newResolveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the images directory and how it was found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := g.resolve()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.Original, res.Source)
			return nil
		},
	}
}

func newTreeCmd(g *globals) *cobra.Command {
	var imagesOnly bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the directory tree under the images directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := g.browser(nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := scanner.NewTreeScanner(b, g.cfg.MaxDepth, g.logger).ScanDirectory(ctx, b.Root().Original)
			if err != nil {
				return err
			}
			r := &renderer.StandardTreeRenderer{ImagesOnly: imagesOnly}
			fmt.Fprint(cmd.OutOrStdout(), r.RenderTree(result))
			return nil
		},
	}
	cmd.Flags().BoolVar(&imagesOnly, "images-only", false, "Hide files that are not images")
	return cmd
}

func newClassifyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "classify PATH...",
		Short: "Show what activating each path would publish",
		Long: `Classify runs each PATH through the same activation the file browser
uses and prints the result kind and the topics it publishes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := &events.Recorder{}
			b, err := g.browser(rec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				rec.Reset()
				res := b.Activate(arg)
				fmt.Fprintf(out, "%s\t%s\t%s", arg, res.Kind, topicList(rec.Topics()))
				if res.Reason != nil {
					fmt.Fprintf(out, "\t%v", res.Reason)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

// browser builds a browser over the resolved root publishing to pub.
func (g *globals) browser(pub events.Publisher) (*browser.Browser, error) {
	res, err := g.resolve()
	if err != nil {
		return nil, err
	}
	filter, err := browser.NewExtensionFilter(g.cfg.Extensions)
	if err != nil {
		return nil, err
	}
	return browser.New(res, filter, pub, browser.Options{
		ShowHidden: g.cfg.ShowHidden,
		SortDirs:   g.cfg.SortDirs,
		Logger:     g.logger,
	})
}

func topicList(topics []events.Topic) string {
	if len(topics) == 0 {
		return "-"
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}
