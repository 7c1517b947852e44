package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v2"
	"github.com/scylladb/go-set/strset"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nvcollection/nvcx/internal"
	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/nvcx"
	"github.com/nvcollection/nvcx/nvcx/collection"
)

var addSeriesTitle string

var addCmd = &cobra.Command{
	Use:   "add COLLECTION PATTERN...",
	Short: "add books matching the given path patterns to a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAddCmd,
}

func init() {
	addCmd.Flags().StringVarP(&addSeriesTitle, "series", "s", "", "place added books under the series with this title (created when absent)")

	rootCmd.AddCommand(addCmd)
}

func runAddCmd(_ *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	doc, err := nvcx.LoadCollection(fs, args[0])
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", args[0], err)
	}

	if err := doc.Lock(fs); err != nil {
		return err
	}
	defer func() {
		if err := doc.Unlock(fs); err != nil {
			log.Warnf("unable to unlock collection: %+v", err)
		}
	}()

	matches, err := expandPatterns(args[1:])
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match the given patterns")
	}

	var series *collection.Series
	if addSeriesTitle != "" {
		series = findSeriesByTitle(doc.Collection, addSeriesTitle)
		if series == nil {
			series = doc.Collection.AddSeries(addSeriesTitle)
		}
	}

	baseDir := filepath.Dir(doc.Path)
	var added int
	for _, match := range matches {
		path := relativeTo(baseDir, match)

		if hasBookWithPath(doc.Collection, path) {
			log.Infof("skipping %s: already in the collection", path)
			continue
		}

		if !internal.HasAnyOfSuffixes(path, ".novx") {
			log.Warnf("%s does not look like a manuscript file", path)
		}

		book := doc.Collection.AddBook(titleFromPath(match), path)
		if series != nil {
			if err := doc.Collection.MoveBook(book.ID, series.ID); err != nil {
				return err
			}
		}
		added++
	}

	if added == 0 {
		if !appConfig.Quiet {
			fmt.Println("No new books to add")
		}
		return nil
	}

	if err := doc.Write(fs); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}

	if !appConfig.Quiet {
		fmt.Printf("Added %d books to %s\n", added, doc.Path)
	}

	return nil
}

// expandPatterns resolves doublestar glob patterns against the filesystem, returning a sorted
// set of matching files. Directories are dropped from the results.
func expandPatterns(patterns []string) ([]string, error) {
	set := strset.New()
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			log.Warnf("no files match pattern %q", pattern)
			continue
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				continue
			}
			set.Add(match)
		}
	}

	paths := set.List()
	sort.Strings(paths)
	return paths, nil
}

// relativeTo rewrites the given path relative to the directory holding the collection file so
// that the collection stays portable. Paths that cannot be made relative are kept absolute.
func relativeTo(baseDir, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return abs
	}

	rel, err := filepath.Rel(absBase, abs)
	if err != nil {
		log.Debugf("unable to make %s relative to %s, keeping the absolute path", path, baseDir)
		return abs
	}
	return rel
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func findSeriesByTitle(c *collection.Collection, title string) *collection.Series {
	for _, s := range c.AllSeries() {
		if s.Title == title {
			return s
		}
	}
	return nil
}

func hasBookWithPath(c *collection.Collection, path string) bool {
	for _, b := range c.AllBooks() {
		if b.Path == path {
			return true
		}
	}
	return false
}
