package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/ziputil"
	"github.com/bitrise-steplib/steps-bedrock-gametest/testaddon"
	"github.com/bitrise-steplib/steps-bedrock-gametest/testresult"
)

// Exported step outputs ...
const (
	TestResultKey      = "BITRISE_GAMETEST_RESULT"
	ResultsPathKey     = "BITRISE_GAMETEST_RESULTS_PATH"
	ReportPathKey      = "BITRISE_GAMETEST_REPORT_PATH"
	ServerLogPathKey   = "BITRISE_BEDROCK_SERVER_LOG_PATH"
	ContentLogsZipKey  = "BITRISE_CONTENT_LOGS_ZIP_PATH"
	serverLogFileName  = "bedrock_server.log"
	contentLogsZipName = "content_logs.zip"
)

// OutputExporter is the part of export.Exporter used for file outputs.
type OutputExporter interface {
	ExportOutputFile(key, sourcePath, destinationPath string) error
	ExportOutputFilesZip(key string, sourcePaths []string, zipPath string) error
}

// FileWriter ...
type FileWriter interface {
	Write(path string, value string, perm os.FileMode) error
}

// TempDirProvider ...
type TempDirProvider interface {
	CreateTempDir(prefix string) (string, error)
}

// Exporter ...
type Exporter interface {
	ExportTestRunResult(failed bool)
	ExportResults(deployDir, resultsPath string) error
	ExportReport(reportPath string)
	ExportServerLog(deployDir, serverLog string) error
	ExportContentLogs(deployDir string, paths []string) error
	ExportServerDiagnostics(deployDir, logsDir string) error
	ExportTestAddon(run testresult.TestRun, bundleName string)
}

type exporter struct {
	envRepository     env.Repository
	logger            log.Logger
	outputExporter    OutputExporter
	fileWriter        FileWriter
	tempDirProvider   TempDirProvider
	testAddonExporter testaddon.Exporter
}

// NewExporter ...
func NewExporter(
	envRepository env.Repository,
	logger log.Logger,
	outputExporter OutputExporter,
	fileWriter FileWriter,
	tempDirProvider TempDirProvider,
	testAddonExporter testaddon.Exporter,
) Exporter {
	return &exporter{
		envRepository:     envRepository,
		logger:            logger,
		outputExporter:    outputExporter,
		fileWriter:        fileWriter,
		tempDirProvider:   tempDirProvider,
		testAddonExporter: testAddonExporter,
	}
}

func (e exporter) ExportTestRunResult(failed bool) {
	status := "succeeded"
	if failed {
		status = "failed"
	}
	if err := e.envRepository.Set(TestResultKey, status); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", TestResultKey, err)
	}
}

func (e exporter) ExportResults(deployDir, resultsPath string) error {
	deployPth := filepath.Join(deployDir, filepath.Base(resultsPath))
	if err := e.outputExporter.ExportOutputFile(ResultsPathKey, resultsPath, deployPth); err != nil {
		return fmt.Errorf("failed to export test results (%s): %w", resultsPath, err)
	}
	return nil
}

func (e exporter) ExportReport(reportPath string) {
	if err := e.envRepository.Set(ReportPathKey, reportPath); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", ReportPathKey, err)
	}
}

func (e exporter) ExportServerLog(deployDir, serverLog string) error {
	deployPth := filepath.Join(deployDir, serverLogFileName)
	if err := e.fileWriter.Write(deployPth, serverLog, 0644); err != nil {
		return fmt.Errorf("failed to write server log to (%s): %w", deployPth, err)
	}

	if err := e.envRepository.Set(ServerLogPathKey, deployPth); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", ServerLogPathKey, err)
	}

	return nil
}

func (e exporter) ExportContentLogs(deployDir string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	zipPth := filepath.Join(deployDir, contentLogsZipName)
	if err := e.outputExporter.ExportOutputFilesZip(ContentLogsZipKey, paths, zipPth); err != nil {
		return fmt.Errorf("failed to export content logs: %w", err)
	}
	return nil
}

func (e exporter) ExportServerDiagnostics(deployDir, logsDir string) error {
	outputPath := filepath.Join(deployDir, "bedrock_server_logs.zip")
	if err := ziputil.ZipDir(logsDir, outputPath, true); err != nil {
		return fmt.Errorf("failed to compress server logs: %w", err)
	}

	return nil
}

func (e exporter) ExportTestAddon(run testresult.TestRun, bundleName string) {
	addonResultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if len(addonResultPath) == 0 {
		return
	}

	e.logger.Println()
	e.logger.Infof("Exporting test results")

	if err := e.exportTestAddon(run, addonResultPath, bundleName); err != nil {
		e.logger.Warnf("Failed to export test results: %s", err)
	}
}

func (e exporter) exportTestAddon(run testresult.TestRun, addonResultPath, bundleName string) error {
	tmpDir, err := e.tempDirProvider.CreateTempDir("gametest-junit")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}

	resultDir := filepath.Join(tmpDir, "gametest")
	if _, err := e.testAddonExporter.WriteJUnit(resultDir, testaddon.ConvertToJUnit(run)); err != nil {
		return err
	}

	return e.testAddonExporter.CopyAndSaveMetadata(testaddon.AddonCopy{
		SourceTestOutputDir:   resultDir,
		TargetAddonPath:       addonResultPath,
		TargetAddonBundleName: bundleName,
	})
}
