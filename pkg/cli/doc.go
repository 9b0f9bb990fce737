/*
Package cli provides command-line interface utilities shared by the echo
command's subcommands.

Output Formatting:

Command results print as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Signal Handling:

For cancelling long-running work (render --watch, context sync) on
SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
