package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wagoodman/go-partybus"

	"github.com/nvcollection/nvcx/internal"
	"github.com/nvcollection/nvcx/internal/bus"
	"github.com/nvcollection/nvcx/internal/config"
	"github.com/nvcollection/nvcx/internal/format"
	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/internal/ui"
	"github.com/nvcollection/nvcx/internal/version"
	"github.com/nvcollection/nvcx/nvcx"
	"github.com/nvcollection/nvcx/nvcx/document"
	"github.com/nvcollection/nvcx/nvcx/event"
	"github.com/nvcollection/nvcx/nvcx/nvcxerr"
	"github.com/nvcollection/nvcx/nvcx/presenter"
)

var persistentOpts = config.CliOnlyOptions{}

var rootCmd = &cobra.Command{
	Use:   fmt.Sprintf("%s [COLLECTION]", internal.ApplicationName),
	Short: "A validator and maintenance tool for novel collection files",
	Long: format.Tprintf(`Supports the following collection sources:
    {{.appName}} ./novels.nvcx        read a collection file from disk
    {{.appName}} < saved.nvcx         read a collection document from stdin
`, map[string]interface{}{
		"appName": internal.ApplicationName,
	}),
	Args:          validateRootArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Dev.ProfileCPU && appConfig.Dev.ProfileMem {
			return fmt.Errorf("cannot profile CPU and memory simultaneously")
		}

		if appConfig.Dev.ProfileCPU {
			defer profile.Start(profile.CPUProfile).Stop()
		} else if appConfig.Dev.ProfileMem {
			defer profile.Start(profile.MemProfile).Stop()
		}

		var userInput string
		if len(args) > 0 {
			userInput = args[0]
		}
		return runDefaultCmd(cmd, userInput)
	},
}

func init() {
	setGlobalCliOptions()
	setRootFlags(rootCmd.Flags())
}

func setGlobalCliOptions() {
	// setup global CLI options (available on all CLI commands)
	rootCmd.PersistentFlags().StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")

	flag := "quiet"
	rootCmd.PersistentFlags().BoolP(
		flag, "q", false,
		"suppress all logging output",
	)
	if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		fmt.Printf("unable to bind flag '%s': %+v", flag, err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")
}

func setRootFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"output", "o", "",
		fmt.Sprintf("report output formatter, formats=%v", presenter.Options),
	)

	flags.StringP("file", "", "",
		"file to write the report output to (default is STDOUT)",
	)

	flags.StringP("template", "t", "", "specify the path to a Go template file ("+
		"requires 'template' output to be selected)")

	flags.BoolP(
		"fail-on-missing", "f", false,
		"set the return code to 2 if any book of the collection is missing on disk",
	)
}

func bindRootConfigOptions(flags *pflag.FlagSet) error {
	if err := viper.BindPFlag("output", flags.Lookup("output")); err != nil {
		return err
	}

	if err := viper.BindPFlag("file", flags.Lookup("file")); err != nil {
		return err
	}

	if err := viper.BindPFlag("output-template-file", flags.Lookup("template")); err != nil {
		return err
	}

	if err := viper.BindPFlag("fail-on-missing", flags.Lookup("fail-on-missing")); err != nil {
		return err
	}

	return nil
}

func validateRootArgs(cmd *cobra.Command, args []string) error {
	isPipedInput, err := internal.IsPipedInput()
	if err != nil {
		log.Warnf("unable to determine if there is piped input: %+v", err)
		isPipedInput = false
	}

	if len(args) == 0 && !isPipedInput {
		// in the case that no arguments are given and there is no piped input we want to show the help text and return with a non-0 return code.
		if err := cmd.Help(); err != nil {
			return fmt.Errorf("unable to display help: %w", err)
		}
		return fmt.Errorf("a collection file argument is required")
	}

	return cobra.MaximumNArgs(1)(cmd, args)
}

func runDefaultCmd(_ *cobra.Command, userInput string) error {
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
		startCheckWorker(userInput),
		setupSignals(),
		eventSubscription,
		ui.Select(isVerbose(), appConfig.Quiet, reporter),
		func() {},
	)
}

// startCheckWorker loads the collection given by the user and verifies every book entry against
// the filesystem, publishing the report presenter onto the bus when done. Errors are returned
// on the channel, the final event is always published so the UI can exit cleanly.
func startCheckWorker(userInput string) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		checkForAppUpdate()

		doc, err := loadDocument(userInput)
		if err != nil {
			errs <- err
			return
		}

		if err := doc.Collection.Validate(); err != nil {
			errs <- fmt.Errorf("invalid collection document: %w", err)
			return
		}

		report := nvcx.CheckCollection(afero.NewOsFs(), doc)

		if appConfig.FailOnMissing && report.Missing > 0 {
			errs <- nvcxerr.ErrMissingBooks
		}

		bus.Publish(partybus.Event{
			Type:  event.CollectionCheckFinished,
			Value: presenter.GetPresenter(appConfig.PresenterOpt, appConfig.OutputTemplateFile, doc, report, appConfig),
		})
	}()
	return errs
}

func loadDocument(userInput string) (*document.Document, error) {
	if userInput == "" {
		// no path was given, the collection document is piped in on stdin
		doc, err := document.Decode(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read collection from stdin: %w", err)
		}
		return doc, nil
	}

	doc, err := nvcx.LoadCollection(afero.NewOsFs(), userInput)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", userInput, err)
	}
	return doc, nil
}

func checkForAppUpdate() {
	if !appConfig.CheckForAppUpdate {
		return
	}

	isAvailable, newVersion, err := version.IsUpdateAvailable()
	if err != nil {
		log.Errorf(err.Error())
	}
	if isAvailable {
		log.Infof("new version of %s is available: %s (currently running: %s)", internal.ApplicationName, newVersion, version.FromBuild().Version)

		bus.Publish(partybus.Event{
			Type:  event.AppUpdateAvailable,
			Value: newVersion,
		})
	} else {
		log.Debugf("no new %s update available", internal.ApplicationName)
	}
}

func isVerbose() (result bool) {
	isPipedInput, err := internal.IsPipedInput()
	if err != nil {
		// since we can't tell if there was piped input we assume that there could be, which
		// means we should not show the ETUI
		log.Warnf("unable to determine if there is piped input: %+v", err)
		return true
	}
	// verbosity should consider if there is piped input (in which case we should not show the ETUI)
	return appConfig.CliOptions.Verbosity > 0 || isPipedInput
}
