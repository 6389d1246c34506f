package step

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-bedrock-gametest/cleanup"
	"github.com/bitrise-steplib/steps-bedrock-gametest/contentlog"
	"github.com/bitrise-steplib/steps-bedrock-gametest/output"
	"github.com/bitrise-steplib/steps-bedrock-gametest/packs"
	"github.com/bitrise-steplib/steps-bedrock-gametest/provision"
	"github.com/bitrise-steplib/steps-bedrock-gametest/report"
	"github.com/bitrise-steplib/steps-bedrock-gametest/server"
	"github.com/bitrise-steplib/steps-bedrock-gametest/summary"
	"github.com/bitrise-steplib/steps-bedrock-gametest/testresult"
	"github.com/google/uuid"
	shellquote "github.com/kballard/go-shellquote"
)

const (
	defaultReportFileName = "gametest-summary.md"
	testAddonBundleName   = "GameTest"
)

// The server may flush the result artifact shortly after the process exits.
var (
	resultsWaitAttempts uint = 5
	resultsWaitInterval      = 2 * time.Second
)

// Input ...
type Input struct {
	// Server
	ServerPath    string `env:"bds_path,required"`
	ServerOptions string `env:"server_options"`
	LevelDatPath  string `env:"level_dat_path"`
	Packs         string `env:"packs"`

	// Test run
	TestTags           string `env:"test_tags"`
	TimeoutTicks       int    `env:"timeout_ticks,required"`
	RepeatCount        int    `env:"repeat_count,required"`
	RepeatFailuresOnly bool   `env:"repeat_failures_only,opt[yes,no]"`
	MaxTestsPerBatch   int    `env:"max_tests_per_batch,required"`

	// Report
	ReportPath          string `env:"report_path"`
	LegacyTestNames     bool   `env:"legacy_test_names,opt[yes,no]"`
	ShowIterationStatus bool   `env:"show_iteration_status,opt[yes,no]"`

	// Debug
	Verbose           bool   `env:"verbose,opt[yes,no]"`
	StreamServerLog   bool   `env:"stream_server_log,opt[yes,no]"`
	CollectServerLogs string `env:"collect_server_logs,opt[always,on_failure,never]"`

	// Output export
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

type exportCondition int

const (
	invalid exportCondition = iota
	always
	never
	onFailure
)

func parseExportCondition(condition string) exportCondition {
	switch condition {
	case "always":
		return always
	case "never":
		return never
	case "on_failure":
		return onFailure
	default:
		return invalid
	}
}

// Config ...
type Config struct {
	ServerDir    string
	ServerArgs   []string
	LevelDatPath string
	Packs        []packs.Entry

	Tags               []string
	TimeoutTicks       int
	RepeatCount        int
	RepeatFailuresOnly bool
	MaxTestsPerBatch   int

	ReportPath  string
	GridOptions report.GridOptions

	StreamServerLog   bool
	CollectServerLogs exportCondition

	DeployDir string
}

// PathModifier ...
type PathModifier interface {
	AbsPath(pth string) (string, error)
}

// PathChecker ...
type PathChecker interface {
	IsPathExists(pth string) (bool, error)
}

// FileManager ...
type FileManager interface {
	Open(path string) (*os.File, error)
	Write(path string, value string, perm os.FileMode) error
}

// GametestConfigParser ...
type GametestConfigParser struct {
	inputParser  stepconf.InputParser
	logger       log.Logger
	pathModifier PathModifier
	goos         string
}

// NewGametestConfigParser ...
func NewGametestConfigParser(inputParser stepconf.InputParser, logger log.Logger, pathModifier PathModifier, goos string) GametestConfigParser {
	return GametestConfigParser{
		inputParser:  inputParser,
		logger:       logger,
		pathModifier: pathModifier,
		goos:         goos,
	}
}

// ProcessConfig ...
func (s GametestConfigParser) ProcessConfig() (Config, error) {
	var input Input
	if err := s.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	s.logger.Println()

	s.logger.EnableDebugLog(input.Verbose)

	// Bedrock Dedicated Server ships for Linux only
	if s.goos == "darwin" || s.goos == "windows" {
		return Config{}, fmt.Errorf("unsupported platform (%s), Bedrock Dedicated Server runs on linux", s.goos)
	}

	serverDir, err := s.pathModifier.AbsPath(input.ServerPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute server path: %w", err)
	}

	if input.TimeoutTicks < 1 {
		return Config{}, fmt.Errorf("invalid Timeout ticks (timeout_ticks): %d, should be at least 1", input.TimeoutTicks)
	}
	if input.RepeatCount < 1 {
		return Config{}, fmt.Errorf("invalid Repeat count (repeat_count): %d, should be at least 1", input.RepeatCount)
	}
	if input.MaxTestsPerBatch < 1 {
		return Config{}, fmt.Errorf("invalid Max tests per batch (max_tests_per_batch): %d, should be at least 1", input.MaxTestsPerBatch)
	}

	collectServerLogs := parseExportCondition(input.CollectServerLogs)
	if input.CollectServerLogs == "" {
		collectServerLogs = onFailure
	}
	if collectServerLogs == invalid {
		return Config{}, fmt.Errorf("internal error, unexpected value (%s) for collect_server_logs", input.CollectServerLogs)
	}

	serverArgs, err := shellquote.Split(input.ServerOptions)
	if err != nil {
		return Config{}, fmt.Errorf("provided Server options (%s) are not valid CLI parameters: %w", input.ServerOptions, err)
	}

	var levelDatPath string
	if input.LevelDatPath != "" {
		if levelDatPath, err = s.pathModifier.AbsPath(input.LevelDatPath); err != nil {
			return Config{}, fmt.Errorf("failed to get absolute level.dat path: %w", err)
		}
	} else {
		s.logger.Warnf("No level.dat template (level_dat_path) is set, the server generates a new world.")
		s.logger.Warnf("The GameTest debug pack only loads in a world with the Beta APIs experiment enabled, without it no test results are written.")
	}

	reportPath := input.ReportPath
	if reportPath == "" {
		reportPath = filepath.Join(input.DeployDir, defaultReportFileName)
	}

	return Config{
		ServerDir:    serverDir,
		ServerArgs:   serverArgs,
		LevelDatPath: levelDatPath,
		Packs:        packs.ParseLines(input.Packs),

		Tags:               splitList(input.TestTags),
		TimeoutTicks:       input.TimeoutTicks,
		RepeatCount:        input.RepeatCount,
		RepeatFailuresOnly: input.RepeatFailuresOnly,
		MaxTestsPerBatch:   input.MaxTestsPerBatch,

		ReportPath: reportPath,
		GridOptions: report.GridOptions{
			LegacyNames: input.LegacyTestNames,
			ShowStatus:  input.ShowIterationStatus,
		},

		StreamServerLog:   input.StreamServerLog,
		CollectServerLogs: collectServerLogs,

		DeployDir: input.DeployDir,
	}, nil
}

// splitList accepts newline or comma separated items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ',' }) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GametestRunner ...
type GametestRunner struct {
	logger         log.Logger
	cleaner        cleanup.Cleaner
	provisioner    provision.Provisioner
	serverRunner   server.Runner
	pathChecker    PathChecker
	fileManager    FileManager
	discoverer     contentlog.Discoverer
	outputExporter output.Exporter
	utils          Utils
}

// NewGametestRunner ...
func NewGametestRunner(
	logger log.Logger,
	cleaner cleanup.Cleaner,
	provisioner provision.Provisioner,
	serverRunner server.Runner,
	pathChecker PathChecker,
	fileManager FileManager,
	discoverer contentlog.Discoverer,
	outputExporter output.Exporter,
	utils Utils,
) GametestRunner {
	return GametestRunner{
		logger:         logger,
		cleaner:        cleaner,
		provisioner:    provisioner,
		serverRunner:   serverRunner,
		pathChecker:    pathChecker,
		fileManager:    fileManager,
		discoverer:     discoverer,
		outputExporter: outputExporter,
		utils:          utils,
	}
}

// Result ...
type Result struct {
	ServerDir   string
	DeployDir   string
	ResultsPath string
	ReportPath  string
	ServerLog   string

	GridOptions       report.GridOptions
	CollectServerLogs exportCondition

	// Set by Report
	TestRun       testresult.TestRun
	HasTestRun    bool
	ContentLogs   []string
	ReportWritten bool
}

// TestsFailed ...
func (r Result) TestsFailed() bool {
	return r.HasTestRun && r.TestRun.Failed > 0
}

// Run ...
func (s GametestRunner) Run(cfg Config) (Result, error) {
	result := Result{
		ServerDir:         cfg.ServerDir,
		DeployDir:         cfg.DeployDir,
		ResultsPath:       provision.ResultsPath(cfg.ServerDir),
		ReportPath:        cfg.ReportPath,
		GridOptions:       cfg.GridOptions,
		CollectServerLogs: cfg.CollectServerLogs,
	}

	s.logger.Infof("Preparing Bedrock Dedicated Server")

	if err := s.cleaner.RemoveStaleArtifacts(cfg.ServerDir); err != nil {
		return result, err
	}

	debugPack := packs.NewDebugPack()
	testRunID := uuid.NewString()
	skipped, err := s.provisioner.Provision(provision.Settings{
		ServerDir:          cfg.ServerDir,
		RepeatCount:        cfg.RepeatCount,
		RepeatFailuresOnly: cfg.RepeatFailuresOnly,
		MaxTestsPerBatch:   cfg.MaxTestsPerBatch,
		TimeoutTicks:       cfg.TimeoutTicks,
		TestRunID:          testRunID,
		Tags:               cfg.Tags,
		DebugPack:          debugPack,
		Packs:              packs.Merge([]packs.Entry{debugPack}, cfg.Packs),
		LevelDatTemplate:   cfg.LevelDatPath,
	})
	if err != nil {
		return result, fmt.Errorf("failed to provision server: %w", err)
	}
	for _, entry := range skipped {
		s.logger.Warnf("Pack entry is not a pack_id/version pair, it was not added to the world: %s", entry.Raw)
	}

	s.logger.Printf("- test run id: %s", testRunID)
	s.logger.Printf("- debug pack: %s %s", debugPack.PackID, debugPack.Version)
	s.logger.Println()

	s.logger.Infof("Running GameTests")

	out, err := s.serverRunner.Run(cfg.ServerDir, cfg.ServerArgs)
	result.ServerLog = string(out.RawOut)
	if err != nil {
		s.utils.PrintLastLinesOfServerLog(result.ServerLog, false)
		return result, fmt.Errorf("bedrock server failed (exit code: %d): %w", out.ExitCode, err)
	}

	if err := s.waitForResults(result.ResultsPath); err != nil {
		s.utils.PrintLastLinesOfServerLog(result.ServerLog, false)
		return result, err
	}

	s.logger.Println()
	s.logger.Donef("Test results written to %s", result.ResultsPath)

	return result, nil
}

func (s GametestRunner) waitForResults(pth string) error {
	return retry.Times(resultsWaitAttempts).Wait(resultsWaitInterval).Try(func(attempt uint) error {
		exists, err := s.pathChecker.IsPathExists(pth)
		if err != nil {
			return err
		}
		if !exists {
			s.logger.Debugf("attempt %d: test results not found yet (%s)", attempt, pth)
			return fmt.Errorf("test results not found (%s)", pth)
		}
		return nil
	})
}

// Report decodes the result artifact and writes the summary document.
func (s GametestRunner) Report(result Result) (Result, error) {
	s.logger.Println()
	s.logger.Infof("Reporting test results")

	data, err := s.readFile(result.ResultsPath)
	if err != nil {
		return result, err
	}

	run, err := testresult.Decode(data)
	if err != nil {
		var decodeErr *testresult.DecodeError
		if errors.As(err, &decodeErr) {
			s.logger.Errorf("Invalid test results artifact (%s)", result.ResultsPath)
		}
		return result, err
	}
	result.TestRun = run
	result.HasTestRun = true

	s.logger.Printf("- unique: %d", run.Unique)
	s.logger.Printf("- passed: %d", run.Passed)
	s.logger.Printf("- failed: %d", run.Failed)
	s.logger.Printf("- total run: %d", run.TotalRun)

	groups := report.GroupResults(run.Results)
	grid := report.BuildGrid(run.CurrentIteration, groups, result.GridOptions)

	logs, err := s.discoverer.Discover(result.ServerDir)
	if err != nil {
		s.logger.Warnf("Failed to collect content logs: %s", err)
	}
	for _, logFile := range logs {
		result.ContentLogs = append(result.ContentLogs, logFile.Name)
	}

	emitter := report.NewEmitter(summary.NewFileWriter(s.fileManager, result.ReportPath), s.logger)
	if err := emitter.Emit(run, grid, logs); err != nil {
		return result, err
	}
	result.ReportWritten = true

	s.logger.Donef("Report written to %s", result.ReportPath)

	return result, nil
}

func (s GametestRunner) readFile(pth string) ([]byte, error) {
	f, err := s.fileManager.Open(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to open test results (%s): %w", pth, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warnf("Failed to close test results (%s): %s", pth, err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read test results (%s): %w", pth, err)
	}
	return data, nil
}

// Export ...
func (s GametestRunner) Export(result Result, testFailed bool) error {
	s.outputExporter.ExportTestRunResult(testFailed)

	if result.DeployDir == "" {
		s.logger.Warnf("No deploy directory is set, skipping artifact export")
		return nil
	}

	s.logger.Println()
	s.logger.Infof("Exporting outputs")

	if result.ServerLog != "" {
		if err := s.outputExporter.ExportServerLog(result.DeployDir, result.ServerLog); err != nil {
			return err
		}
	}

	if result.HasTestRun {
		if err := s.outputExporter.ExportResults(result.DeployDir, result.ResultsPath); err != nil {
			return err
		}
		s.outputExporter.ExportTestAddon(result.TestRun, testAddonBundleName)
	}

	if result.ReportWritten {
		s.outputExporter.ExportReport(result.ReportPath)
	}

	if err := s.outputExporter.ExportContentLogs(result.DeployDir, result.ContentLogs); err != nil {
		s.logger.Warnf("%s", err)
	}

	if result.CollectServerLogs == always || (result.CollectServerLogs == onFailure && testFailed) {
		logsDir := filepath.Join(result.ServerDir, provision.LogsDir)
		if err := s.outputExporter.ExportServerDiagnostics(result.DeployDir, logsDir); err != nil {
			s.logger.Warnf("%s", err)
		} else {
			s.logger.Donef("Server logs are available as an artifact")
		}
	}

	return nil
}
