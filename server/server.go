package server

import (
	"bytes"
	"io"
	"path/filepath"
	"time"

	"github.com/bitrise-io/go-utils/progress"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/log"
)

// BinaryName is the dedicated server executable inside the BDS directory.
const BinaryName = "bedrock_server"

// The server is shipped with its shared libraries next to the binary.
var serverEnvs = []string{"LD_LIBRARY_PATH=."}

// Output ...
type Output struct {
	RawOut   []byte
	ExitCode int
}

// Runner ...
type Runner interface {
	Run(serverDir string, args []string) (Output, error)
}

type runner struct {
	logger         log.Logger
	commandFactory command.Factory
	stream         io.Writer
}

// NewRunner returns a Runner that captures the server output.
// When stream is not nil the output is also copied to it while the server runs,
// otherwise progress dots are printed.
func NewRunner(logger log.Logger, commandFactory command.Factory, stream io.Writer) Runner {
	return &runner{
		logger:         logger,
		commandFactory: commandFactory,
		stream:         stream,
	}
}

func (r *runner) Run(serverDir string, args []string) (Output, error) {
	var (
		outBuffer bytes.Buffer
		err       error
		exitCode  int
	)

	var out io.Writer = &outBuffer
	if r.stream != nil {
		out = io.MultiWriter(r.stream, &outBuffer)
	}

	cmd := r.commandFactory.Create(filepath.Join(serverDir, BinaryName), args, &command.Opts{
		Stdout: out,
		Stderr: out,
		Env:    serverEnvs,
		Dir:    serverDir,
	})

	r.logger.TPrintf("$ %s", cmd.PrintableCommandArgs())

	if r.stream != nil {
		exitCode, err = cmd.RunAndReturnExitCode()
	} else {
		progress.SimpleProgress(".", time.Minute, func() {
			exitCode, err = cmd.RunAndReturnExitCode()
		})
	}

	return Output{
		RawOut:   outBuffer.Bytes(),
		ExitCode: exitCode,
	}, err
}
