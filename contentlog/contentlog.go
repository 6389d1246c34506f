package contentlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-bedrock-gametest/report"
)

// Pattern matches the content logs BDS writes when content-log-file-enabled is set.
const Pattern = "ContentLog__*"

// FileOpener ...
type FileOpener interface {
	Open(path string) (*os.File, error)
}

// Discoverer ...
type Discoverer interface {
	Discover(serverDir string) ([]report.LogFile, error)
}

type discoverer struct {
	fileOpener FileOpener
	logger     log.Logger
}

// NewDiscoverer ...
func NewDiscoverer(fileOpener FileOpener, logger log.Logger) Discoverer {
	return &discoverer{
		fileOpener: fileOpener,
		logger:     logger,
	}
}

// Match returns the content log paths in serverDir, in glob order.
func Match(serverDir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(serverDir, Pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to search for content logs in (%s): %w", serverDir, err)
	}
	return paths, nil
}

func (d discoverer) Discover(serverDir string) ([]report.LogFile, error) {
	paths, err := Match(serverDir)
	if err != nil {
		return nil, err
	}

	var logs []report.LogFile
	for _, pth := range paths {
		content, err := d.read(pth)
		if err != nil {
			return nil, err
		}

		d.logger.Debugf("Found content log: %s (%d bytes)", pth, len(content))
		logs = append(logs, report.LogFile{Name: pth, Content: content})
	}

	return logs, nil
}

func (d discoverer) read(pth string) (string, error) {
	f, err := d.fileOpener.Open(pth)
	if err != nil {
		return "", fmt.Errorf("failed to open content log (%s): %w", pth, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			d.logger.Warnf("Failed to close content log (%s): %s", pth, err)
		}
	}()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read content log (%s): %w", pth, err)
	}

	return string(content), nil
}
