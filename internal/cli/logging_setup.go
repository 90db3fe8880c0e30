package cli

import (
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/rshade/dropdown/internal/config"
	"github.com/rshade/dropdown/internal/logging"
)

// setupLogging configures logging from the logging section and CLI flags and
// stores the logger in the command context.
func setupLogging(cmd *cobra.Command, loggingCfg config.LoggingConfig, debug bool) logging.LogPathResult {
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	runID := ulid.Make().String()
	ctx := logging.WithContext(cmd.Context(), result.Logger.With().Str("run_id", runID).Logger())
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Str("run_id", runID).Msg("command started")

	return result
}
