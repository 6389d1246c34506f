package testaddon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/log"
)

// FileWriter ...
type FileWriter interface {
	Write(path string, value string, perm os.FileMode) error
}

// TestAddon ...
type TestAddon interface {
	ReplaceUnsupportedFilenameCharacters(s string) string
	CopyDirectory(sourceDir string, targetDir string) error
	SaveBundleMetadata(outputDir string, bundleName string) error
}

type testAddon struct {
	logger         log.Logger
	commandFactory command.Factory
	fileWriter     FileWriter
}

// NewTestAddon ...
func NewTestAddon(logger log.Logger, commandFactory command.Factory, fileWriter FileWriter) TestAddon {
	return &testAddon{
		logger:         logger,
		commandFactory: commandFactory,
		fileWriter:     fileWriter,
	}
}

// ReplaceUnsupportedFilenameCharacters replaces '/' and ':', which can not be used in a directory name.
func (t testAddon) ReplaceUnsupportedFilenameCharacters(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

func (t testAddon) CopyDirectory(sourceDir string, targetDir string) error {
	if err := os.MkdirAll(targetDir, 0700); err != nil {
		return fmt.Errorf("failed to create directory (%s): %w", targetDir, err)
	}

	// the trailing `/` copies the directory itself, not only its content
	cmd := t.commandFactory.Create("cp", []string{"-a", sourceDir, targetDir + "/"}, nil)
	t.logger.Donef("$ %s", cmd.PrintableCommandArgs())
	if out, err := cmd.RunAndReturnTrimmedCombinedOutput(); err != nil {
		return fmt.Errorf("copy failed: %w, output: %s", err, out)
	}

	return nil
}

func (t testAddon) SaveBundleMetadata(outputDir string, bundleName string) error {
	type testBundle struct {
		BundleName string `json:"test-name"`
	}
	bytes, err := json.Marshal(testBundle{
		BundleName: bundleName,
	})
	if err != nil {
		return fmt.Errorf("could not encode metadata: %w", err)
	}
	if err := t.fileWriter.Write(filepath.Join(outputDir, "test-info.json"), string(bytes), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
