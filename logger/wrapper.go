package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"io"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"
)

// WrapProcess runs the executable as a child process and supervises its
// stderr: JSON log lines are forwarded to stdout, anything after a "panic"
// line is collected and reported as a single fatal record once the child exits.
// It returns the child's exit code.
func WrapProcess(executable string, arg ...string) int {
	wrapLogger := NewLogger("Logs wrapper")
	defer handlePanic(wrapLogger)

	r, w, err := os.Pipe()
	if err != nil {
		wrapLogger.Error().Err(err).Msg("Could not create pipe for logs")
		return 1
	}

	cmd := exec.Command(executable, arg...)
	cmd.Stderr = w
	cmd.Stdout = os.Stdout

	if err = cmd.Start(); err != nil {
		wrapLogger.Error().Err(err).Msg("Could not launch main process")
		return 1
	}
	exitCodeCh := make(chan int, 1)
	logsCh := make(chan []byte)

	go waitForCommandToExit(cmd, w, wrapLogger, exitCodeCh)
	go collectLogs(r, wrapLogger, logsCh)

	supervisor := logSupervisor{out: os.Stdout, logger: wrapLogger}
	for line := range logsCh {
		supervisor.handleLine(line)
	}
	exitCode := <-exitCodeCh
	return supervisor.handleExit(exitCode)
}

func waitForCommandToExit(cmd *exec.Cmd, w io.Closer, wrapLogger zerolog.Logger, exitCodeCh chan<- int) {
	defer handlePanic(wrapLogger)
	err := cmd.Wait()
	// closing the write end lets collectLogs drain and finish
	_ = w.Close()
	if err == nil {
		exitCodeCh <- 0
		return
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		exitCodeCh <- 1
		return
	}
	exitCodeCh <- exitErr.ExitCode()
}

func collectLogs(r io.Reader, wrapLogger zerolog.Logger, logsCh chan<- []byte) {
	defer close(logsCh)
	defer handlePanic(wrapLogger)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		logsCh <- line
	}
	if err := scanner.Err(); err != nil {
		wrapLogger.Error().Err(err).Msg("Error scanning piped main process's Stderr")
	}
}

type logSupervisor struct {
	out        io.Writer
	logger     zerolog.Logger
	foundPanic bool
	panicLogs  strings.Builder
}

func (s *logSupervisor) handleLine(line []byte) {
	logsLine := string(line)
	if !s.foundPanic && strings.HasPrefix(logsLine, "panic") {
		s.foundPanic = true
	}
	switch {
	case len(line) == 0:
	case s.foundPanic:
		s.panicLogs.WriteString(logsLine)
		s.panicLogs.WriteByte('\n')
	case isJSON(line):
		_, _ = fmt.Fprintln(s.out, logsLine)
	default:
		s.logger.Error().Msgf("Got log line that is not JSON formatted: '%s'", logsLine)
	}
}

func (s *logSupervisor) handleExit(exitCode int) int {
	if exitCode == 0 {
		s.logger.Info().Msg("Exited with code 0")
		return 0
	}
	event := s.logger.Error()
	if s.panicLogs.Len() > 0 {
		event = event.Err(errors.New(s.panicLogs.String()))
	}
	event.Msgf("Main process exited with code: %d", exitCode)
	return exitCode
}

func handlePanic(wrapLogger zerolog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	wrapLogger.Error().
		Caller().
		Str("error", fmt.Sprint(r)).
		Str("stack_trace", string(debug.Stack())).
		Msg("Program panicked")
}

func isJSON(b []byte) bool {
	var js json.RawMessage
	err := json.Unmarshal(b, &js)
	return err == nil && js != nil
}
