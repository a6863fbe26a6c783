package sandbox

import "fmt"

// ErrorKind classifies sandbox failures. Every kind is recovered locally
// into the run Result; nothing propagates past the sandbox boundary.
type ErrorKind string

const (
	// ErrNoFunction: the source defines no entry function.
	ErrNoFunction ErrorKind = "no_function"
	// ErrInfiniteLoop: the injected iteration guard tripped.
	ErrInfiniteLoop ErrorKind = "infinite_loop"
	// ErrAssertion: learner code finished but its result failed the
	// scenario assertion. Distinguished from the timeout kinds so the
	// learner can tell "my code never finished" from "my code is wrong".
	ErrAssertion ErrorKind = "assertion_failed"
	// ErrRuntime: learner code panicked, returned a non-nil error, or
	// failed to evaluate (syntax, forbidden import, bad signature).
	ErrRuntime ErrorKind = "runtime_exception"
	// ErrTimeout: the run exceeded its wall-clock budget and was abandoned.
	ErrTimeout ErrorKind = "timeout"
	// ErrCrash: host-level failure unrelated to learner code.
	ErrCrash ErrorKind = "sandbox_crashed"
)

// ExecError is the structured error carried in a run Result.
type ExecError struct {
	Kind    ErrorKind
	Message string
}

func (e *ExecError) Error() string { return e.Message }

func noFunctionErr() *ExecError {
	return &ExecError{Kind: ErrNoFunction, Message: "Could not find a function"}
}

func infiniteLoopErr(msg string) *ExecError {
	return &ExecError{Kind: ErrInfiniteLoop, Message: msg}
}

func assertionErr(msg string) *ExecError {
	return &ExecError{Kind: ErrAssertion, Message: msg}
}

func runtimeErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrRuntime, Message: fmt.Sprintf(format, args...)}
}

func timeoutErr(budgetMs int) *ExecError {
	return &ExecError{Kind: ErrTimeout, Message: fmt.Sprintf("Execution timed out after %dms", budgetMs)}
}

func crashErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrCrash, Message: fmt.Sprintf(format, args...)}
}
