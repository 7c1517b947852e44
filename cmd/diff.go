package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"

	"github.com/nvcollection/nvcx/internal/bus"
	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/internal/ui"
	"github.com/nvcollection/nvcx/nvcx"
	"github.com/nvcollection/nvcx/nvcx/diff"
	"github.com/nvcollection/nvcx/nvcx/event"
)

var diffOutputFormat string

var diffCmd = &cobra.Command{
	Use:   "diff BASE TARGET",
	Short: "diff two collection files and display the result",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiffCmd,
}

func init() {
	diffCmd.Flags().StringVarP(&diffOutputFormat, "output", "o", "table", "format to display results (available=[table, json])")

	rootCmd.AddCommand(diffCmd)
}

func runDiffCmd(_ *cobra.Command, args []string) error {
	reporter, closer, err := reportWriter()
	defer func() {
		if err := closer(); err != nil {
			log.Warnf("unable to write to report destination: %+v", err)
		}
	}()
	if err != nil {
		return err
	}

	return eventLoop(
		startDiffWorker(args[0], args[1]),
		setupSignals(),
		eventSubscription,
		ui.Select(isVerbose(), appConfig.Quiet, reporter),
		func() {},
	)
}

// startDiffWorker compares the two collections and publishes the rendered result as the final
// event so that it is written out only after any status UI has been torn down.
func startDiffWorker(basePath, targetPath string) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		fs := afero.NewOsFs()

		base, err := nvcx.LoadCollection(fs, basePath)
		if err != nil {
			errs <- fmt.Errorf("failed to load collection %s: %w", basePath, err)
			return
		}

		target, err := nvcx.LoadCollection(fs, targetPath)
		if err != nil {
			errs <- fmt.Errorf("failed to load collection %s: %w", targetPath, err)
			return
		}

		changes := diff.Compare(base.Collection, target.Collection)

		var result string
		if len(changes) == 0 {
			result = "Collections are identical!\n"
		} else {
			buf := &bytes.Buffer{}
			if err := diff.Present(diffOutputFormat, changes, buf); err != nil {
				errs <- err
				return
			}
			result = buf.String()
		}

		bus.Publish(partybus.Event{
			Type:  event.NonRootCommandFinished,
			Value: result,
		})
	}()
	return errs
}
