package cmdcontext

// CmdCtx is the main structure of the program context.
// Contains within itself other structures of CLI modules.
type CmdCtx struct {
	// Cli - CLI context. Contains flags passed when starting
	// ct and some other parameters.
	Cli CliCtx
	// CommandName contains name of the command.
	CommandName string
}

// CliCtx - CLI context. Contains flags passed when starting
// ct and some other parameters.
type CliCtx struct {
	// Path to ct (ct.yaml) config. Empty if no config is found.
	ConfigPath string
	// ConfigDir is ct configuration file directory.
	ConfigDir string
	// Verbose logging flag. Enables debug log output.
	Verbose bool
}
