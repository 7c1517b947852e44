package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/nvcollection/nvcx/internal/bus"
	"github.com/nvcollection/nvcx/internal/file"
	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/internal/ui"
	"github.com/nvcollection/nvcx/nvcx"
	"github.com/nvcollection/nvcx/nvcx/document"
	"github.com/nvcollection/nvcx/nvcx/event"
	"github.com/nvcollection/nvcx/nvcx/schema"
)

var importCmd = &cobra.Command{
	Use:   "import COLLECTION SOURCE",
	Short: "merge a collection fetched from a path or URL into an existing collection",
	Long: "fetch the collection document named by SOURCE (a local path or any go-getter URL) and merge its series " +
		"and books into COLLECTION. Identifiers already taken by the target are remapped on the way in.",
	Args: cobra.ExactArgs(2),
	RunE: runImportCmd,
}

func init() {
	flag := "checksum"
	importCmd.Flags().String(
		flag, "",
		"expected digest of the fetched document (e.g. sha256:deadbeef...), no validation when empty",
	)
	if err := viper.BindPFlag("import.checksum", importCmd.Flags().Lookup(flag)); err != nil {
		fmt.Printf("unable to bind flag '%s': %+v", flag, err)
		os.Exit(1)
	}

	rootCmd.AddCommand(importCmd)
}

func runImportCmd(_ *cobra.Command, args []string) error {
	reporter, closer, err := reportWriter()
	defer func() {
		if err := closer(); err != nil {
			log.Warnf("unable to write to report destination: %+v", err)
		}
	}()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(appConfig.Import.CacheDir, 0755); err != nil {
		return fmt.Errorf("unable to create import cache dir: %w", err)
	}

	// the scratch dir must outlive the worker so that cleanup happens after the event loop drains
	scratchDir, err := ioutil.TempDir(appConfig.Import.CacheDir, "download-")
	if err != nil {
		return fmt.Errorf("unable to create import scratch dir: %w", err)
	}

	return eventLoop(
		startImportWorker(args[0], args[1], scratchDir),
		setupSignals(),
		eventSubscription,
		ui.Select(isVerbose(), appConfig.Quiet, reporter),
		func() {
			if err := os.RemoveAll(scratchDir); err != nil {
				log.Errorf("unable to remove import scratch dir: %+v", err)
			}
		},
	)
}

func startImportWorker(collectionPath, source, scratchDir string) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		fs := afero.NewOsFs()

		doc, err := nvcx.LoadCollection(fs, collectionPath)
		if err != nil {
			errs <- fmt.Errorf("failed to load collection %s: %w", collectionPath, err)
			return
		}

		src, err := fetchSource(fs, source, scratchDir)
		if err != nil {
			errs <- err
			return
		}

		if err := src.Collection.Validate(); err != nil {
			errs <- fmt.Errorf("invalid source collection: %w", err)
			return
		}

		if err := doc.Lock(fs); err != nil {
			errs <- err
			return
		}
		defer func() {
			if err := doc.Unlock(fs); err != nil {
				log.Warnf("unable to unlock collection: %+v", err)
			}
		}()

		result := doc.Collection.Merge(src.Collection)

		if err := doc.Write(fs); err != nil {
			errs <- fmt.Errorf("failed to write collection: %w", err)
			return
		}

		bus.Publish(partybus.Event{
			Type: event.NonRootCommandFinished,
			Value: fmt.Sprintf("Imported %d series and %d books from %s (%d identifiers remapped)",
				result.Series, result.Books, source, len(result.Remapped)),
		})
	}()
	return errs
}

func trackFetch() (*progress.Stage, *progress.Manual, *progress.Manual) {
	// let consumers know of a monitorable event (download + decode stages)
	stage := &progress.Stage{
		Current: "fetching",
	}
	downloadProgress := &progress.Manual{
		Total: 1,
	}
	decodeProgress := &progress.Manual{
		Total: 1,
	}
	aggregateProgress := progress.NewAggregator(progress.DefaultStrategy, downloadProgress, decodeProgress)

	bus.Publish(partybus.Event{
		Type: event.FetchingSource,
		Value: progress.StagedProgressable(&struct {
			progress.Stager
			progress.Progressable
		}{
			Stager:       progress.Stager(stage),
			Progressable: progress.Progressable(aggregateProgress),
		}),
	})

	return stage, downloadProgress, decodeProgress
}

// fetchSource materializes the collection document named by userSource in the scratch directory
// and decodes it, reporting progress on the bus along the way.
func fetchSource(fs afero.Fs, userSource, scratchDir string) (*document.Document, error) {
	stage, downloadProgress, decodeProgress := trackFetch()
	defer downloadProgress.SetCompleted()
	defer decodeProgress.SetCompleted()

	stage.Current = "downloading"
	dst := filepath.Join(scratchDir, "source"+schema.FileExtension)
	if err := file.NewGetter(cleanhttp.DefaultClient()).GetFile(dst, userSource, downloadProgress); err != nil {
		return nil, fmt.Errorf("unable to fetch source %s: %w", userSource, err)
	}

	if checksum := appConfig.Import.Checksum; checksum != "" {
		stage.Current = "validating checksum"
		valid, actualHash, err := file.ValidateByHash(fs, dst, checksum)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, fmt.Errorf("bad source checksum: %q vs %q", checksum, actualHash)
		}
	}

	stage.Current = "decoding"
	src, err := document.Load(fs, dst)
	if err != nil {
		return nil, fmt.Errorf("unable to decode fetched collection: %w", err)
	}
	decodeProgress.N++

	return src, nil
}
