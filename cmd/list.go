package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nvcollection/nvcx/nvcx"
	"github.com/nvcollection/nvcx/nvcx/check"
	"github.com/nvcollection/nvcx/nvcx/presenter"
)

var listOutputFormat string

var listCmd = &cobra.Command{
	Use:   "list COLLECTION",
	Short: "list every book of a collection without verifying the filesystem",
	Args:  cobra.ExactArgs(1),
	RunE:  runListCmd,
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "table", "format to display results (available=[table, json])")

	rootCmd.AddCommand(listCmd)
}

func runListCmd(_ *cobra.Command, args []string) error {
	doc, err := nvcx.LoadCollection(afero.NewOsFs(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", args[0], err)
	}

	report := check.Inventory(doc.Collection)

	option := presenter.ParseOption(listOutputFormat)
	switch option {
	case presenter.TablePresenter, presenter.JSONPresenter:
	default:
		return fmt.Errorf("unsupported output format: %s", listOutputFormat)
	}

	pres := presenter.GetPresenter(option, "", doc, report, appConfig)
	if err := pres.Present(os.Stdout); err != nil {
		return fmt.Errorf("failed to show collection contents: %w", err)
	}

	return nil
}
