package main

import (
	"io"
	"os"
	"runtime"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-steputils/v2/stepenv"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-bedrock-gametest/cleanup"
	"github.com/bitrise-steplib/steps-bedrock-gametest/contentlog"
	"github.com/bitrise-steplib/steps-bedrock-gametest/output"
	"github.com/bitrise-steplib/steps-bedrock-gametest/provision"
	"github.com/bitrise-steplib/steps-bedrock-gametest/server"
	"github.com/bitrise-steplib/steps-bedrock-gametest/step"
	"github.com/bitrise-steplib/steps-bedrock-gametest/testaddon"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	envRepository := stepenv.NewRepository(env.NewRepository())
	commandFactory := command.NewFactory(envRepository)

	configParser := step.NewGametestConfigParser(stepconf.NewInputParser(envRepository), logger, pathutil.NewPathModifier(), runtime.GOOS)
	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("Process config: %s", err)
		return 1
	}

	gametestRunner := createStep(logger, envRepository, commandFactory, config)

	result, runErr := gametestRunner.Run(config)
	if runErr != nil {
		logger.Errorf("Run: %s", runErr)
	}

	var reportErr error
	if runErr == nil {
		result, reportErr = gametestRunner.Report(result)
		if reportErr != nil {
			logger.Errorf("Report: %s", reportErr)
		}
	}

	testFailed := runErr != nil || reportErr != nil || result.TestsFailed()
	if err := gametestRunner.Export(result, testFailed); err != nil {
		logger.Errorf("Export outputs: %s", err)
		return 1
	}

	if testFailed {
		if runErr == nil && reportErr == nil {
			logger.Errorf("%d of %d test runs failed", result.TestRun.Failed, result.TestRun.TotalRun)
		}
		return 1
	}

	logger.Println()
	logger.Donef("All GameTests passed")

	return 0
}

func createStep(logger log.Logger, envRepository env.Repository, commandFactory command.Factory, config step.Config) step.GametestRunner {
	fileManager := fileutil.NewFileManager()

	var stream io.Writer
	if config.StreamServerLog {
		stream = os.Stdout
	}
	serverRunner := server.NewRunner(logger, commandFactory, stream)

	outputExporter := export.NewExporter(commandFactory, fileManager)
	testAddonExporter := testaddon.NewExporter(testaddon.NewTestAddon(logger, commandFactory, fileManager), fileManager)
	exporter := output.NewExporter(envRepository, logger, &outputExporter, fileManager, pathutil.NewPathProvider(), testAddonExporter)

	return step.NewGametestRunner(
		logger,
		cleanup.NewCleaner(cleanup.NewFileRemover(), logger),
		provision.NewProvisioner(fileManager, logger),
		serverRunner,
		pathutil.NewPathChecker(),
		fileManager,
		contentlog.NewDiscoverer(fileManager, logger),
		exporter,
		step.NewUtils(logger),
	)
}
