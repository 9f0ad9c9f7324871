package main

import (
	"github.com/chazu/vecgraph/pkg/engine"
	"github.com/chazu/vecgraph/pkg/graph"
	"github.com/chazu/vecgraph/pkg/pathdata"
	"github.com/chazu/vecgraph/pkg/store"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// colorPalette assigns distinct preview colors to regions.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs scripts and keeps the resulting drawings in a snapshot store.
type App struct {
	engine *engine.Engine
	store  *store.Store
}

// RegionData is one fillable region in the form a tessellator or previewer
// consumes: every cycle as a path-data subpath plus the fill rule.
type RegionData struct {
	Path   string `json:"path"`
	Fill   string `json:"fill"`
	Cycles int    `json:"cycles"`
	Holes  int    `json:"holes"`
	Color  string `json:"color"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one run.
type EvalResult struct {
	Nodes    int             `json:"nodes"`
	Edges    int             `json:"edges"`
	Regions  []RegionData    `json:"regions"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates an App. st may be nil when no documents are kept.
func NewApp(st *store.Store) *App {
	return &App{
		engine: engine.NewEngine(),
		store:  st,
	}
}

// Evaluate runs source against an empty drawing.
func (a *App) Evaluate(source string) EvalResult {
	result, _ := a.evaluate(nil, source)
	return result
}

// EvaluateDocument runs source as an edit of the named document and saves
// the edited drawing back when the run succeeds. A document that does not
// exist yet starts empty.
func (a *App) EvaluateDocument(name, source string) (EvalResult, error) {
	if a.store == nil {
		return EvalResult{}, errors.New("no document store configured")
	}
	base, err := a.store.Load(name)
	if errors.Is(err, store.ErrNotFound) {
		klog.V(1).Infof("app: starting new document %q", name)
		base = graph.New()
	} else if err != nil {
		return EvalResult{}, err
	}

	result, g := a.evaluate(base, source)
	if g == nil {
		return result, nil
	}
	if err := a.store.Save(name, g); err != nil {
		return result, errors.Wrapf(err, "save %q", name)
	}
	return result, nil
}

func (a *App) evaluate(base *graph.Graph, source string) (EvalResult, *graph.Graph) {
	result := EvalResult{
		Regions:  []RegionData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	res := a.engine.RunOn(base, source)
	for _, e := range res.Errors {
		result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
	}
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Message})
	}
	if res.Graph == nil {
		return result, nil
	}
	result.Nodes, result.Edges = res.Graph.NodeCount(), res.Graph.EdgeCount()
	if len(res.Errors) > 0 {
		return result, nil
	}

	for i, r := range res.Regions {
		path, err := pathdata.FormatRegion(res.Graph, r)
		if err != nil {
			klog.Errorf("app: format region %d: %v", i, err)
			result.Errors = append(result.Errors, EvalErrorData{Message: "format region failed: " + err.Error()})
			return result, nil
		}
		result.Regions = append(result.Regions, RegionData{
			Path:   path,
			Fill:   r.Winding.String(),
			Cycles: len(r.Cycles),
			Holes:  len(r.Holes()),
			Color:  colorPalette[i%len(colorPalette)],
		})
	}
	return result, res.Graph
}
