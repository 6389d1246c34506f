package cleanup

import (
	"fmt"
	"os"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-bedrock-gametest/contentlog"
	"github.com/bitrise-steplib/steps-bedrock-gametest/provision"
)

// FileRemover ...
type FileRemover interface {
	Remove(name string) error
	RemoveAll(path string) error
}

type fileRemover struct{}

// NewFileRemover ...
func NewFileRemover() FileRemover {
	return fileRemover{}
}

func (r fileRemover) Remove(name string) error {
	return os.Remove(name)
}

func (r fileRemover) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Cleaner ...
type Cleaner interface {
	RemoveStaleArtifacts(serverDir string) error
}

type cleaner struct {
	fileRemover FileRemover
	logger      log.Logger
}

// NewCleaner ...
func NewCleaner(fileRemover FileRemover, logger log.Logger) Cleaner {
	return &cleaner{
		fileRemover: fileRemover,
		logger:      logger,
	}
}

// RemoveStaleArtifacts deletes the result artifact and content logs a previous run left behind,
// so the wait for the new artifact can not pick up an old one.
func (c cleaner) RemoveStaleArtifacts(serverDir string) error {
	stale := []string{provision.ResultsPath(serverDir)}

	logs, err := contentlog.Match(serverDir)
	if err != nil {
		return err
	}
	stale = append(stale, logs...)

	for _, pth := range stale {
		c.logger.Debugf("Removing %s", pth)
		if err := c.fileRemover.RemoveAll(pth); err != nil {
			return fmt.Errorf("failed to remove stale artifact (%s): %w", pth, err)
		}
	}

	return nil
}
