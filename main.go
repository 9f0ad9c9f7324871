// Command vecgraph runs a drawing script and prints the fillable regions it
// produces.
//
//	vecgraph [-db dir -doc name] [-json] [script]
//
// The script is read from the named file, or from stdin when none is given.
// With -doc the script edits a stored document and the result is saved back.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chazu/vecgraph/pkg/store"
	"github.com/plan-systems/klog"
)

func main() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	dbPath := flag.String("db", "", "snapshot store directory")
	doc := flag.String("doc", "", "document to edit in the store")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	list := flag.Bool("list", false, "list stored documents and exit")
	flag.Parse()

	os.Exit(run(*dbPath, *doc, *asJSON, *list, flag.Arg(0)))
}

func run(dbPath, doc string, asJSON, list bool, scriptPath string) int {
	defer klog.Flush()

	var st *store.Store
	if dbPath != "" {
		var err error
		st, err = store.Open(store.Options{Path: dbPath})
		if err != nil {
			klog.Errorf("%v", err)
			return 2
		}
		defer st.Close()
	}

	if list {
		if st == nil {
			klog.Errorf("-list needs -db")
			return 2
		}
		names, err := st.List()
		if err != nil {
			klog.Errorf("%v", err)
			return 2
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return 0
	}

	source, err := readSource(scriptPath)
	if err != nil {
		klog.Errorf("%v", err)
		return 2
	}

	app := NewApp(st)
	var result EvalResult
	if doc != "" {
		if result, err = app.EvaluateDocument(doc, source); err != nil {
			klog.Errorf("%v", err)
			return 2
		}
	} else {
		result = app.Evaluate(source)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			klog.Errorf("%v", err)
			return 2
		}
	} else {
		printResult(os.Stdout, result)
	}
	if len(result.Errors) > 0 {
		return 1
	}
	return 0
}

func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func printResult(w io.Writer, r EvalResult) {
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
	for _, wn := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", wn.Message)
	}
	fmt.Fprintf(w, "%d nodes, %d edges, %d regions\n", r.Nodes, r.Edges, len(r.Regions))
	for i, reg := range r.Regions {
		fmt.Fprintf(w, "region %d (%s, %d holes): %s\n", i, reg.Fill, reg.Holes, reg.Path)
	}
}
