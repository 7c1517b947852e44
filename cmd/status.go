package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nvcollection/nvcx/nvcx/document"
)

var statusCmd = &cobra.Command{
	Use:   "status COLLECTION",
	Short: "display collection file status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runStatusCmd(cmd, args))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(_ *cobra.Command, args []string) int {
	status := document.CurrentStatus(afero.NewOsFs(), args[0])

	fmt.Println("Location: ", status.Location)
	fmt.Println("Modified: ", status.Modified.String())
	fmt.Println("Size: ", humanize.Bytes(uint64(status.Size)))
	fmt.Println("Checksum: ", status.Checksum)
	fmt.Println("Schema Version: ", status.SchemaVersion)
	fmt.Println("Series: ", status.Series)
	fmt.Println("Books: ", status.Books)
	fmt.Println("Locked: ", status.Locked)
	if status.Err != nil {
		fmt.Printf("Status: INVALID [%+v]\n", status.Err)
	} else {
		fmt.Println("Status: Valid")
	}

	return 0
}
