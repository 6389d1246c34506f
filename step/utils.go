package step

import (
	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/stringutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

// Utils ...
type Utils interface {
	PrintLastLinesOfServerLog(serverLog string, isRunSuccess bool)
}

type utils struct {
	logger log.Logger
}

// NewUtils ...
func NewUtils(logger log.Logger) Utils {
	return &utils{
		logger: logger,
	}
}

func (u utils) PrintLastLinesOfServerLog(serverLog string, isRunSuccess bool) {
	const lastLines = "Last lines of the server log:"
	u.logger.Println()
	if !isRunSuccess {
		u.logger.Errorf(lastLines)
	} else {
		u.logger.Infof(lastLines)
	}

	u.logger.Printf("%s", stringutil.LastNLines(serverLog, 20))
	u.logger.Println()

	if !isRunSuccess {
		u.logger.Warnf("If you can't find the reason of the error in the log, please check the bedrock_server.log.")
	}

	u.logger.Infof(colorstring.Magenta(`
The log file is stored in $BITRISE_DEPLOY_DIR, and its full path
is available in the $BITRISE_BEDROCK_SERVER_LOG_PATH environment variable.

If you have the Deploy to Bitrise.io step (after this step),
that will attach the file to your build as an artifact!`))
}
