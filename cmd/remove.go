package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/nvcx"
)

var removeCmd = &cobra.Command{
	Use:   "remove COLLECTION ID...",
	Short: "remove books or series from a collection by identifier",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runRemoveCmd,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemoveCmd(_ *cobra.Command, args []string) error {
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

	ids := args[1:]
	for _, id := range ids {
		if err := doc.Collection.Remove(id); err != nil {
			return err
		}
	}

	if err := doc.Write(fs); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}

	if !appConfig.Quiet {
		fmt.Printf("Removed %d entries from %s\n", len(ids), doc.Path)
	}

	return nil
}
