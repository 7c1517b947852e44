package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvcollection/nvcx/nvcx/schema"
)

var schemaVersionOnly bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "display the collection document type definition",
	Long: "display the DTD describing the collection document format. The DTD is informational: " +
		"files are read without validating against it and are written without a document type declaration.",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runSchemaCmd(cmd, args))
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaVersionOnly, "version", false, "show only the schema version written by this build")

	rootCmd.AddCommand(schemaCmd)
}

func runSchemaCmd(_ *cobra.Command, _ []string) int {
	if schemaVersionOnly {
		fmt.Println(schema.Current().String())
		return 0
	}

	fmt.Print(schema.Definition())
	return 0
}
