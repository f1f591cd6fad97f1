package cmd

import (
	"encoding/json"
	"fmt"

	"schemadiff/core/change"
	"schemadiff/core/reconcile"
	"schemadiff/core/value"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconcileOptions []string
	reconcileFormat  string
	reconcileVerify  bool
)

// reconcileCmd aligns two lists and prints the edit script.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <source> <target>",
	Short: "Print the edit script that turns one list into another",
	Long: `Reconcile two lists read from YAML or JSON documents.

Each document must hold a sequence. The command prints the removals,
additions, modifications and moves in application order.

Examples:
  # Edit script with a replay check
  schemadiff reconcile before.yaml after.yaml --verify

  # JSON edit script
  schemadiff reconcile before.yaml after.yaml --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringArrayVarP(&reconcileOptions, "option", "o", nil, "Comparison option as key=value (repeatable)")
	reconcileCmd.Flags().StringVar(&reconcileFormat, "format", formatText, "Output format: text or json")
	reconcileCmd.Flags().BoolVar(&reconcileVerify, "verify", false, "Replay the script on the source and check it yields the target")
	RootCmd.AddCommand(reconcileCmd)
}

func readList(path string) ([]value.Value, error) {
	v, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	l, ok := v.(*value.List)
	if !ok {
		return nil, fmt.Errorf("%s: expected a sequence, got %s", path, v.Kind())
	}
	return l.Items(), nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	engine, err := e.engine(reconcileOptions)
	if err != nil {
		return err
	}

	source, err := readList(args[0])
	if err != nil {
		return err
	}
	target, err := readList(args[1])
	if err != nil {
		return err
	}

	ops, err := engine.Reconcile(source, target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch reconcileFormat {
	case formatText:
		if len(ops) == 0 {
			fmt.Fprintln(out, "no changes")
		}
		for _, op := range ops {
			fmt.Fprintln(out, change.Describe(op))
		}
	case formatJSON:
		nodes := make([]*change.Node, 0, len(ops))
		for _, op := range ops {
			nodes = append(nodes, change.Encode(op))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nodes); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", reconcileFormat)
	}

	if !reconcileVerify {
		return nil
	}
	replayed, err := reconcile.Apply(source, ops)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}
	rest, err := engine.Reconcile(replayed, target)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("replay left %d edits", len(rest))
	}
	e.logger.Info("Replay verified", zap.Int("ops", len(ops)), zap.Int("items", len(replayed)))
	return nil
}
