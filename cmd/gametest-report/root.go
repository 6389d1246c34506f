package main

import (
	"fmt"
	"io"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/spf13/cobra"

	"github.com/bitrise-steplib/steps-bedrock-gametest/contentlog"
	"github.com/bitrise-steplib/steps-bedrock-gametest/report"
	"github.com/bitrise-steplib/steps-bedrock-gametest/summary"
	"github.com/bitrise-steplib/steps-bedrock-gametest/testresult"
)

var (
	resultsFlag     string
	logsDirFlag     string
	outputFlag      string
	legacyNamesFlag bool
	showStatusFlag  bool
	verboseFlag     bool
)

func init() {
	rootCmd.Flags().StringVarP(
		&resultsFlag,
		"results",
		"r",
		"",
		"path to the GameTest result artifact: -r logs/test-results-gametest.json",
	)
	rootCmd.Flags().StringVarP(
		&logsDirFlag,
		"logs-dir",
		"l",
		"",
		"directory searched for ContentLog__* files to attach",
	)
	rootCmd.Flags().StringVarP(
		&outputFlag,
		"output",
		"o",
		"",
		"write the markdown report to a file instead of stdout",
	)
	rootCmd.Flags().BoolVarP(
		&legacyNamesFlag,
		"legacy-names",
		"",
		false,
		"show the testingfoo placeholder instead of test names",
	)
	rootCmd.Flags().BoolVarP(
		&showStatusFlag,
		"show-status",
		"s",
		false,
		"fill the iteration cells with status, duration and error",
	)
	rootCmd.Flags().BoolVarP(
		&verboseFlag,
		"verbose",
		"v",
		false,
		"verbose",
	)
	_ = rootCmd.MarkFlagRequired("results")
}

var rootCmd = &cobra.Command{
	Use:          "gametest-report",
	Long:         "Render a markdown report from a Bedrock GameTest result artifact",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewLogger()
		logger.EnableDebugLog(verboseFlag)

		fileManager := fileutil.NewFileManager()

		var writer report.Writer
		if outputFlag != "" {
			writer = summary.NewFileWriter(fileManager, outputFlag)
		} else {
			writer = stdoutWriter{out: cmd.OutOrStdout()}
		}

		opts := report.GridOptions{LegacyNames: legacyNamesFlag, ShowStatus: showStatusFlag}
		return renderReport(fileManager, logger, writer, resultsFlag, logsDirFlag, opts)
	},
}

type stdoutWriter struct {
	out io.Writer
}

func (w stdoutWriter) Write(doc report.Document) error {
	_, err := io.WriteString(w.out, summary.Render(doc))
	return err
}

func renderReport(fileOpener contentlog.FileOpener, logger log.Logger, writer report.Writer, resultsPath, logsDir string, opts report.GridOptions) error {
	f, err := fileOpener.Open(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to open test results: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warnf("Failed to close test results (%s): %s", resultsPath, err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read test results: %w", err)
	}

	run, err := testresult.Decode(data)
	if err != nil {
		return err
	}

	var logs []report.LogFile
	if logsDir != "" {
		if logs, err = contentlog.NewDiscoverer(fileOpener, logger).Discover(logsDir); err != nil {
			return err
		}
	}

	grid := report.BuildGrid(run.CurrentIteration, report.GroupResults(run.Results), opts)
	return report.NewEmitter(writer, logger).Emit(run, grid, logs)
}
