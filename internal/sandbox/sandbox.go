// Package sandbox executes untrusted learner code against an instrumented
// data structure under a wall-clock budget, using the Yaegi interpreter as
// the evaluation boundary. Interpreting instead of compiling keeps the run
// in-process, denies the code any import outside a small stdlib whitelist,
// and lets a context deadline bound the call.
//
// The sandbox defends against accidental infinite loops and runtime
// exceptions, not against deliberately hostile escape attempts. A timed-out
// run is abandoned, not killed: the interpreter goroutine cannot be
// preempted, so the injected loop guard is what keeps spinning loops from
// living out the whole budget.
package sandbox

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"

	"algoviz/internal/config"
	"algoviz/internal/logging"
	"algoviz/internal/step"
)

// Result is the outcome of one sandbox run. Produced once per invocation,
// immutable afterwards, owned by the caller.
type Result struct {
	RunID   uuid.UUID       `json:"runId"`
	Success bool            `json:"success"`
	Steps   []step.Step     `json:"steps"`
	Console []ConsoleRecord `json:"consoleRecords"`
	Err     *ExecError      `json:"-"`
	Error   string          `json:"error,omitempty"`
	Elapsed time.Duration   `json:"executionTime"`
}

// Sandbox runs learner code. One run at a time; each run builds a fresh
// interpreter and a fresh structure, so nothing leaks between runs.
type Sandbox struct {
	cfg config.SandboxConfig
	log *zap.Logger
}

// New creates a sandbox with the given configuration.
func New(cfg config.SandboxConfig) *Sandbox {
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = config.DefaultSandboxConfig().TimeoutMs
	}
	if len(cfg.AllowedImports) == 0 {
		cfg.AllowedImports = config.DefaultSandboxConfig().AllowedImports
	}
	return &Sandbox{cfg: cfg, log: logging.Get(logging.CategorySandbox)}
}

// Run executes source against the scenario's instrumented structure and
// returns a fully populated Result. All failures are recovered into the
// Result; Run itself never panics past this frame and never returns an
// error value.
func (s *Sandbox) Run(ctx context.Context, source string, sc Scenario) Result {
	start := time.Now()
	res := Result{RunID: uuid.New()}

	// A timed-out interpreter goroutine keeps emitting after Run returns,
	// so steps and console records are collected behind the capture's lock
	// and frozen by seal() before any Result leaves this frame.
	capture := &runCapture{}

	// Reassigned once the console writers exist. Must run before seal, so
	// trailing partial lines make it into the result.
	flushConsole := func() {}

	fail := func(e *ExecError) Result {
		flushConsole()
		res.Steps, res.Console = capture.seal()
		res.Err = e
		res.Error = e.Message
		res.Elapsed = time.Since(start)
		s.log.Debug("run failed",
			zap.String("runId", res.RunID.String()),
			zap.String("kind", string(e.Kind)),
			zap.String("error", e.Message))
		return res
	}

	prog, execErr := transform(source, s.cfg.IterationCeiling, s.cfg.AllowedImports)
	if execErr != nil {
		return fail(execErr)
	}

	var sink step.Sink
	if s.cfg.CaptureSteps {
		sink = capture.addStep
	}
	inst, err := buildStructure(sc, sink)
	if err != nil {
		return fail(crashErr("invalid scenario: %v", err))
	}

	var stdout, stderr io.Writer = io.Discard, io.Discard
	if s.cfg.CaptureConsole {
		outW := newConsoleWriter("log", capture)
		errW := newConsoleWriter("error", capture)
		stdout, stderr = outW, errW
		flushConsole = func() {
			outW.flush()
			errW.flush()
		}
	}

	i := interp.New(interp.Options{Stdout: stdout, Stderr: stderr})
	if err := i.Use(stdlib.Symbols); err != nil {
		return fail(crashErr("failed to load stdlib symbols: %v", err))
	}
	if err := i.Use(structSymbols()); err != nil {
		return fail(crashErr("failed to load structure symbols: %v", err))
	}

	if _, err := i.Eval(prog.source); err != nil {
		return fail(runtimeErr("code evaluation failed: %v", err))
	}

	fn, err := i.Eval("main." + prog.entry)
	if err != nil || fn.Kind() != reflect.Func {
		return fail(noFunctionErr())
	}

	args, execErr := buildArgs(fn.Type(), inst, sc.Args)
	if execErr != nil {
		return fail(execErr)
	}

	timeout := time.Duration(s.cfg.TimeoutMs) * time.Millisecond
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		out      []reflect.Value
		panicked any
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{panicked: r}
			}
		}()
		done <- outcome{out: fn.Call(args)}
	}()

	var got any
	select {
	case <-runCtx.Done():
		// Abandoned, not killed; the goroutine drains into the buffered
		// channel whenever it finishes.
		return fail(timeoutErr(s.cfg.TimeoutMs))
	case o := <-done:
		if o.panicked != nil {
			msg := panicMessage(o.panicked)
			if strings.Contains(msg, loopSentinel) {
				return fail(infiniteLoopErr(msg))
			}
			return fail(runtimeErr("runtime exception: %s", msg))
		}
		got, execErr = returnValue(o.out)
		if execErr != nil {
			return fail(execErr)
		}
	}

	if execErr := s.assert(i, got, sc); execErr != nil {
		return fail(execErr)
	}

	flushConsole()
	res.Steps, res.Console = capture.seal()
	res.Success = true
	res.Elapsed = time.Since(start)
	s.log.Debug("run succeeded",
		zap.String("runId", res.RunID.String()),
		zap.Int("steps", len(res.Steps)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// buildArgs binds (structure, scenario args...) to the entry function's
// parameters, converting loosely typed scenario values where possible.
func buildArgs(fnType reflect.Type, inst any, scenarioArgs []any) ([]reflect.Value, *ExecError) {
	want := fnType.NumIn()
	if want == 0 {
		return nil, nil
	}
	supplied := append([]any{inst}, scenarioArgs...)
	if want > len(supplied) {
		return nil, runtimeErr("entry function wants %d arguments, scenario supplies %d", want, len(supplied))
	}

	args := make([]reflect.Value, want)
	for idx := 0; idx < want; idx++ {
		paramType := fnType.In(idx)
		v := supplied[idx]
		switch {
		case v == nil:
			args[idx] = reflect.Zero(paramType)
		case paramType.Kind() == reflect.Interface:
			args[idx] = interfaceValue(paramType, v)
		case reflect.TypeOf(v) == paramType:
			args[idx] = reflect.ValueOf(v)
		case reflect.TypeOf(v).ConvertibleTo(paramType):
			args[idx] = reflect.ValueOf(v).Convert(paramType)
		default:
			return nil, runtimeErr("argument %d: cannot convert %T to %s", idx, v, paramType)
		}
	}
	return args, nil
}

func interfaceValue(t reflect.Type, v any) reflect.Value {
	out := reflect.New(t).Elem()
	if v != nil {
		out.Set(reflect.ValueOf(v))
	}
	return out
}

// returnValue extracts the learner's return value: a trailing non-nil
// error becomes a runtime exception, otherwise the first value (if any) is
// the result.
func returnValue(out []reflect.Value) (any, *ExecError) {
	if len(out) == 0 {
		return nil, nil
	}
	last := out[len(out)-1]
	if last.Type() == reflect.TypeOf((*error)(nil)).Elem() {
		if !last.IsNil() {
			return nil, runtimeErr("runtime exception: %v", last.Interface())
		}
		out = out[:len(out)-1]
		if len(out) == 0 {
			return nil, nil
		}
	}
	return out[0].Interface(), nil
}

// panicMessage unwraps interpreter panics to the learner's panic value.
func panicMessage(r any) string {
	if p, ok := r.(interp.Panic); ok {
		return fmt.Sprint(p.Value)
	}
	return fmt.Sprint(r)
}

// assert judges the return value. An empty assertion expression means a
// deep, numerically tolerant comparison against the scenario's expected
// output; otherwise the expression is evaluated inside the interpreter with
// got and want bound.
func (s *Sandbox) assert(i *interp.Interpreter, got any, sc Scenario) *ExecError {
	expr := strings.TrimSpace(sc.Assert)
	if expr == "" {
		if sc.Expected == nil {
			return nil
		}
		ngot, nwant := normalize(got), normalize(sc.Expected)
		if !cmp.Equal(nwant, ngot) {
			return assertionErr(fmt.Sprintf("expected %v, got %v", sc.Expected, got))
		}
		return nil
	}

	fn, err := i.Eval("func(got, want interface{}) bool { return " + expr + " }")
	if err != nil {
		return assertionErr(fmt.Sprintf("invalid assertion %q: %v", expr, err))
	}

	var out []reflect.Value
	assertPanic := func() (p any) {
		defer func() { p = recover() }()
		out = fn.Call([]reflect.Value{
			interfaceValue(anyType, got),
			interfaceValue(anyType, sc.Expected),
		})
		return nil
	}()
	if assertPanic != nil {
		return assertionErr(fmt.Sprintf("assertion panicked: %s", panicMessage(assertPanic)))
	}
	if !out[0].Bool() {
		return assertionErr(fmt.Sprintf("assertion failed: %s (got %v, want %v)", expr, got, sc.Expected))
	}
	return nil
}

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// normalize flattens numeric types to float64 and typed sequences to []any
// so YAML-sourced expectations compare cleanly against interpreted values.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	default:
		return v
	}
}
