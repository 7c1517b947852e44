package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|fish]",
	Short: "Generate a shell completion for nvcx",
	Long: `To load completions:

Bash:

$ source <(nvcx completion bash)

# To load completions for each session, execute once:
Linux:
  $ nvcx completion bash > /etc/bash_completion.d/nvcx
MacOS:
  $ nvcx completion bash > /usr/local/etc/bash_completion.d/nvcx

Fish:

$ nvcx completion fish | source

# To load completions for each session, execute once:
$ nvcx completion fish > ~/.config/fish/completions/nvcx.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "fish"},
	Args:                  cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletion(os.Stdout)
		case "fish":
			err = cmd.Root().GenFishCompletion(os.Stdout, true)
		}
		if err != nil {
			panic(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
