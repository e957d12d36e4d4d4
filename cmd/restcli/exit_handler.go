package main

import (
	"errors"
	"os"

	"github.com/loykin/restcli/internal/common"
	"github.com/loykin/restcli/internal/constants"
	"github.com/loykin/restcli/internal/render"
	"github.com/loykin/restcli/internal/request"
)

// ExitHandler provides a testable way to handle program termination
type ExitHandler interface {
	Exit(code int)
	LogFatalError(err error, msg string, keyvals ...any)
}

// DefaultExitHandler implements ExitHandler for production use
type DefaultExitHandler struct {
	exit func(code int)
}

// NewDefaultExitHandler creates a new default exit handler
func NewDefaultExitHandler() *DefaultExitHandler {
	return &DefaultExitHandler{exit: os.Exit}
}

// Exit terminates the program with the given exit code
func (h *DefaultExitHandler) Exit(code int) {
	if h.exit == nil {
		os.Exit(code)
	}
	h.exit(code)
}

// LogFatalError logs err and exits with the code ExitCode assigns to it.
// HTTP status failures were already printed by the renderer, so they only
// set the exit code.
func (h *DefaultExitHandler) LogFatalError(err error, msg string, keyvals ...any) {
	code := ExitCode(err)
	var se *render.StatusError
	if !errors.As(err, &se) {
		logger := common.GetLogger().WithComponent("main")
		allKeyvals := append([]any{"error", err, "exit_code", code}, keyvals...)
		logger.Error(msg, allKeyvals...)
	}
	h.Exit(code)
}

// ExitCode maps the error taxonomy onto process exit codes.
func ExitCode(err error) int {
	if err == nil {
		return constants.ExitOK
	}
	var (
		se *render.StatusError
		te *request.TransportError
		ie *request.InputError
		ce *ConfigError
		pe *os.PathError
	)
	switch {
	case errors.As(err, &se):
		return constants.ExitHTTPFailure
	case errors.As(err, &te):
		return constants.ExitTransport
	case errors.As(err, &ie), errors.As(err, &ce):
		return constants.ExitInput
	case errors.Is(err, render.ErrCSVShape), errors.Is(err, render.ErrInvalidJSON), errors.As(err, &pe):
		return constants.ExitOutput
	default:
		// cobra argument and flag errors
		return constants.ExitInput
	}
}

// Global exit handler (can be replaced for testing)
var exitHandler ExitHandler = NewDefaultExitHandler()
