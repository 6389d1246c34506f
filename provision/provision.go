package provision

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-bedrock-gametest/packs"
)

// Server layout ...
const (
	TestConfigFile         = "test_config.json"
	ServerPropertiesFile   = "server.properties"
	WorldsDir              = "worlds"
	WorldName              = "Bedrock level"
	LevelDatFile           = "level.dat"
	WorldBehaviorPacksFile = "world_behavior_packs.json"
	LogsDir                = "logs"
	TestResultsFile        = "test-results-gametest.json"
)

// DebugTestTag is always the first tag so the debug pack's test runs in every batch.
const DebugTestTag = "debug"

var permissionsFile = filepath.Join("config", "default", "permissions.json")

// FileManager is the part of fileutil.FileManager provisioning needs.
type FileManager interface {
	Open(path string) (*os.File, error)
	Write(path string, value string, perm os.FileMode) error
	WriteBytes(path string, value []byte) error
}

// Settings ...
type Settings struct {
	ServerDir string

	RepeatCount        int
	RepeatFailuresOnly bool
	MaxTestsPerBatch   int
	TimeoutTicks       int
	TestRunID          string
	Tags               []string

	DebugPack packs.Structured
	Packs     []packs.Entry

	LevelDatTemplate string
}

// ResultsPath is where the server writes the GameTest result artifact.
func ResultsPath(serverDir string) string {
	return filepath.Join(serverDir, LogsDir, TestResultsFile)
}

// WorldPath ...
func WorldPath(serverDir string) string {
	return filepath.Join(serverDir, WorldsDir, WorldName)
}

// Provisioner ...
type Provisioner interface {
	Provision(settings Settings) ([]packs.Opaque, error)
}

type provisioner struct {
	fileManager FileManager
	logger      log.Logger
}

// NewProvisioner ...
func NewProvisioner(fileManager FileManager, logger log.Logger) Provisioner {
	return &provisioner{
		fileManager: fileManager,
		logger:      logger,
	}
}

type testConfig struct {
	RepeatCount        int      `json:"automation_repeat_count"`
	RepeatFailuresOnly bool     `json:"automation_repeat_failures_only"`
	MaxTestsPerBatch   int      `json:"max_tests_per_batch"`
	TimeoutTicks       int      `json:"timeout_ticks"`
	TestRunID          string   `json:"automation_testrun_id"`
	Tags               []string `json:"automation_gametest_tags"`
}

type permissions struct {
	AllowedModules []string `json:"allowed_modules"`
}

// Provision writes every file the server needs for an automated GameTest run.
// It returns the pack entries that could not be added to the world.
func (p provisioner) Provision(settings Settings) ([]packs.Opaque, error) {
	serverDir := settings.ServerDir

	if err := p.writeJSON(filepath.Join(serverDir, TestConfigFile), testConfig{
		RepeatCount:        settings.RepeatCount,
		RepeatFailuresOnly: settings.RepeatFailuresOnly,
		MaxTestsPerBatch:   settings.MaxTestsPerBatch,
		TimeoutTicks:       settings.TimeoutTicks,
		TestRunID:          settings.TestRunID,
		Tags:               append([]string{DebugTestTag}, settings.Tags...),
	}); err != nil {
		return nil, err
	}
	p.logger.Debugf("wrote %s", TestConfigFile)

	if err := writeDebugPack(p.fileManager, serverDir, settings.DebugPack); err != nil {
		return nil, err
	}
	p.logger.Debugf("wrote debug pack (%s)", settings.DebugPack.PackID)

	if err := p.write(filepath.Join(serverDir, ServerPropertiesFile), serverProperties()); err != nil {
		return nil, err
	}
	p.logger.Debugf("wrote %s", ServerPropertiesFile)

	worldPath := WorldPath(serverDir)
	if err := os.MkdirAll(filepath.Join(worldPath, "scripts"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create world directory (%s): %w", worldPath, err)
	}

	if settings.LevelDatTemplate != "" {
		if err := p.copyFile(settings.LevelDatTemplate, filepath.Join(worldPath, LevelDatFile)); err != nil {
			return nil, err
		}
		p.logger.Debugf("wrote %s", LevelDatFile)
	}

	manifest, skipped, err := packs.Manifest(settings.Packs)
	if err != nil {
		return nil, err
	}
	p.logger.Debugf("world_behavior_packs: %s", manifest)
	if err := p.write(filepath.Join(worldPath, WorldBehaviorPacksFile), string(manifest)); err != nil {
		return nil, err
	}
	p.logger.Debugf("wrote %s", WorldBehaviorPacksFile)

	if err := p.writeJSON(filepath.Join(serverDir, permissionsFile), permissions{
		AllowedModules: []string{"*"},
	}); err != nil {
		return nil, err
	}
	p.logger.Debugf("wrote %s", filepath.Base(permissionsFile))

	return skipped, nil
}

func (p provisioner) writeJSON(pth string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", filepath.Base(pth), err)
	}
	return p.write(pth, string(data))
}

func (p provisioner) write(pth, content string) error {
	if err := p.fileManager.Write(pth, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pth, err)
	}
	return nil
}

func (p provisioner) copyFile(source, destination string) error {
	f, err := p.fileManager.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.Warnf("Failed to close %s: %s", source, err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", source, err)
	}

	if err := p.fileManager.WriteBytes(destination, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", destination, err)
	}
	return nil
}
