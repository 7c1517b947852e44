package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nvcollection/nvcx/internal/file"
	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/nvcx/document"
	"github.com/nvcollection/nvcx/nvcx/schema"
)

var (
	newForce    bool
	newLanguage string
)

var newCmd = &cobra.Command{
	Use:   "new COLLECTION",
	Short: "create an empty collection file",
	Args:  cobra.ExactArgs(1),
	RunE:  runNewCmd,
}

func init() {
	newCmd.Flags().BoolVar(&newForce, "force", false, "overwrite the collection file if it already exists")
	newCmd.Flags().StringVar(&newLanguage, "language", "", "language tag recorded on the new collection (e.g. en-US)")

	rootCmd.AddCommand(newCmd)
}

func runNewCmd(_ *cobra.Command, args []string) error {
	fs := afero.NewOsFs()
	path := args[0]

	if !strings.HasSuffix(path, schema.FileExtension) {
		log.Warnf("collection path does not have the %s extension: %s", schema.FileExtension, path)
	}

	if file.Exists(fs, path) && !newForce {
		return fmt.Errorf("collection file already exists (use --force to overwrite): %s", path)
	}

	doc := document.New(path)
	doc.Collection.Language = newLanguage

	if err := doc.Write(fs); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}

	if !appConfig.Quiet {
		fmt.Printf("Created %s\n", path)
	}

	return nil
}
