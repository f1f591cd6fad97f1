// Command debug_reconcile prints the edit script the list reconciler
// emits for two lists and replays it on the source.
//
//	go run ./cmd/debug_reconcile before.yaml after.yaml
package main

import (
	"fmt"
	"log"
	"os"

	"schemadiff/core/change"
	"schemadiff/core/diff"
	"schemadiff/core/omf"
	"schemadiff/core/reconcile"
	"schemadiff/core/value"

	"go.uber.org/zap"
)

func readList(path string) []value.Value {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	v, err := value.Decode(f)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	l, ok := v.(*value.List)
	if !ok {
		log.Fatalf("%s: expected a sequence", path)
	}
	return l.Items()
}

func labels(items []value.Value) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = value.Label(v)
	}
	return out
}

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <source> <target>", os.Args[0])
	}
	source, target := readList(os.Args[1]), readList(os.Args[2])

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	engine := diff.New(omf.Default{}, diff.WithLogger(logger))

	fmt.Println("=== INPUT ===")
	fmt.Printf("source: %v\n", labels(source))
	fmt.Printf("target: %v\n", labels(target))

	fmt.Println("\n=== EDIT SCRIPT ===")
	ops, err := engine.Reconcile(source, target)
	if err != nil {
		log.Fatal(err)
	}
	counts := map[change.Type]int{}
	for i, op := range ops {
		counts[op.Type()]++
		fmt.Printf("%2d. %s\n", i+1, change.Describe(op))
	}
	for t, n := range counts {
		fmt.Printf("    %s: %d\n", t, n)
	}

	fmt.Println("\n=== REPLAY ===")
	working, err := reconcile.Apply(source, ops)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("result: %v\n", labels(working))

	rest, err := engine.Reconcile(working, target)
	if err != nil {
		log.Fatal(err)
	}
	if len(rest) != 0 {
		fmt.Printf("MISMATCH: %d edits remain\n", len(rest))
		os.Exit(1)
	}
	fmt.Println("OK: replay reproduces the target")
}
