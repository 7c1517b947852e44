package config

// CliOnlyOptions are options that are in no way able to be set via the application config, only via the command line.
type CliOnlyOptions struct {
	ConfigPath string
	Verbosity  int
}
