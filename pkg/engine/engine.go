// Package engine evaluates vecgraph scripts. A script runs in a sandboxed
// zygomys Lisp whose builtins edit a graph; one evaluation is one batch of
// edits, after which regions are recomputed once.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/chazu/vecgraph/pkg/region"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// EvalError is a non-fatal failure in user code, such as a parse error or a
// builtin rejecting its arguments.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning is a finding about the resulting graph that does not stop
// region computation.
type EvalWarning struct {
	Message string
	Node    graph.NodeIndex
	Edge    graph.EdgeIndex
}

// EvalResult bundles everything a caller needs after running a script.
type EvalResult struct {
	Graph    *graph.Graph
	Regions  []*region.Region
	Errors   []EvalError
	Warnings []EvalWarning
}

// Options configures an Engine.
type Options struct {
	// Timeout bounds a single evaluation.
	Timeout time.Duration
	// Region is used for region computation in Run. A script may override
	// the winding rule with (winding ...).
	Region region.Options
}

// DefaultOptions returns EvalTimeout and the default region options.
func DefaultOptions() Options {
	return Options{
		Timeout: EvalTimeout,
		Region:  region.DefaultOptions(),
	}
}

// Engine runs scripts. Every evaluation gets a fresh sandbox and its own
// graph, and only the latest evaluation's result is delivered.
//
// Evaluations must be issued sequentially: zygomys keeps global state that
// is not safe for concurrent sandboxes. A timed-out script is abandoned, not
// stopped, so its goroutine may still be running when the next evaluation
// starts.
type Engine struct {
	opts       Options
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an Engine with DefaultOptions.
func NewEngine() *Engine {
	return NewEngineWithOptions(DefaultOptions())
}

// NewEngineWithOptions creates an Engine with opts.
func NewEngineWithOptions(opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = EvalTimeout
	}
	return &Engine{opts: opts}
}

// session is the state a single evaluation builds up.
type session struct {
	g       *graph.Graph
	winding region.WindingRule
}

// Evaluate runs source against an empty graph.
//
// Return semantics:
//   - On success: graph, nil, nil
//   - On parse or eval failure: nil, eval errors, nil
//   - On fatal failure (timeout, panic, superseded): nil, nil, error
func (e *Engine) Evaluate(source string) (*graph.Graph, []EvalError, error) {
	return e.EvaluateOn(nil, source)
}

// EvaluateOn runs source against a copy of base, so the script edits an
// existing drawing. base itself is never modified. A nil base starts empty.
func (e *Engine) EvaluateOn(base *graph.Graph, source string) (*graph.Graph, []EvalError, error) {
	s, evalErrs, err := e.start(base, source)
	if err != nil || len(evalErrs) > 0 {
		return nil, evalErrs, err
	}
	return s.g, nil, nil
}

// Run evaluates source against an empty graph and computes its regions.
func (e *Engine) Run(source string) EvalResult {
	return e.RunOn(nil, source)
}

// RunOn evaluates source against a copy of base, validates the result and
// computes its regions. Fatal failures are reported as errors without line
// information.
func (e *Engine) RunOn(base *graph.Graph, source string) EvalResult {
	var result EvalResult

	s, evalErrs, err := e.start(base, source)
	if err != nil {
		klog.Errorf("engine: evaluation failed: %v", err)
		result.Errors = append(result.Errors, EvalError{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		result.Errors = evalErrs
		return result
	}
	result.Graph = s.g

	for _, v := range graph.Validate(s.g) {
		if v.Severity == graph.SeverityError {
			result.Errors = append(result.Errors, EvalError{Message: v.Error()})
			continue
		}
		result.Warnings = append(result.Warnings, EvalWarning{Message: v.Message, Node: v.Node, Edge: v.Edge})
	}
	if len(result.Errors) > 0 || s.g.EdgeCount() == 0 {
		return result
	}

	opts := e.opts.Region
	opts.Winding = s.winding
	regions, err := region.Build(s.g, opts)
	if err != nil {
		klog.Errorf("engine: region computation failed: %v", err)
		result.Errors = append(result.Errors, EvalError{Message: "region computation failed: " + err.Error()})
		return result
	}
	result.Regions = regions
	return result
}

// start launches an evaluation in its own goroutine and waits for it.
func (e *Engine) start(base *graph.Graph, source string) (*session, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				klog.Errorf("engine: panic during evaluation: %v", r)
				ch <- evalResult{err: errors.Errorf("panic during evaluation: %v", r)}
			}
		}()
		s, evalErrs, err := e.evaluate(base, source)
		ch <- evalResult{session: s, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, e.opts.Timeout, &e.mu, &e.generation)
}

// evaluate runs the script in a fresh sandbox.
func (e *Engine) evaluate(base *graph.Graph, source string) (*session, []EvalError, error) {
	s := &session{g: graph.New(), winding: e.opts.Region.Winding}
	if base != nil {
		s.g = base.Clone()
	}
	if strings.TrimSpace(source) == "" {
		return s, nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, s)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return s, nil, nil
}

// linePattern matches zygomys messages of the form "Error on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches "line N: ...".
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// callPattern matches the "Error calling 'name': " prefix zygomys puts on
// errors returned by Go functions.
var callPattern = regexp.MustCompile(`Error calling '([^']*)':\s*`)

// cleanCallPrefix rewrites zygomys call prefixes to the kebab-case name a
// script uses, dropping them when the error already starts with that name.
func cleanCallPrefix(msg string) string {
	return callPattern.ReplaceAllStringFunc(msg, func(m string) string {
		name := strings.ReplaceAll(callPattern.FindStringSubmatch(m)[1], "_", "-")
		rest := msg[strings.Index(msg, m)+len(m):]
		if strings.HasPrefix(rest, name+":") {
			return ""
		}
		return name + ": "
	})
}

// parseZygomysError converts a zygomys error into EvalErrors, keeping the
// line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, pat := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := pat.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: cleanCallPrefix(strings.TrimSpace(m[2]))}}
		}
	}
	return []EvalError{{Message: cleanCallPrefix(strings.TrimSpace(msg))}}
}
