package cmd

import (
	"errors"

	"schemadiff/core/change"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrChanged is returned by diff --exit-code when the documents differ.
var ErrChanged = errors.New("documents differ")

var (
	diffOptions  []string
	diffFormat   string
	diffTree     bool
	diffExitCode bool
)

// diffCmd compares two documents on disk.
var diffCmd = &cobra.Command{
	Use:   "diff <source> <target>",
	Short: "Compare two YAML or JSON documents",
	Long: `Compare two documents and print the edits that turn source into target.

Mappings with a _type key are objects; their _id key is the identity used to
match them inside lists. Objects without an _id match by content, so an edit
to one shows up as a removal plus an addition.

Examples:
  # Human readable tree
  schemadiff diff old.yaml new.yaml

  # Ignore name case and long table comments, JSON output
  schemadiff diff old.yaml new.yaml -o CaseSensitive=false -o maxTableCommentLength=60 --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringArrayVarP(&diffOptions, "option", "o", nil, "Comparison option as key=value (repeatable)")
	diffCmd.Flags().StringVar(&diffFormat, "format", formatText, "Output format: text, json or yaml")
	diffCmd.Flags().BoolVar(&diffTree, "tree", false, "Include the change tree in json and yaml output")
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "Fail when the documents differ")
	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	engine, err := e.engine(diffOptions)
	if err != nil {
		return err
	}

	source, err := readDocument(args[0])
	if err != nil {
		return err
	}
	target, err := readDocument(args[1])
	if err != nil {
		return err
	}

	c, err := engine.Diff(source, target)
	if err != nil {
		return err
	}
	e.logger.Debug("Documents compared", zap.Int("edits", len(change.Leaves(c))))

	if err := writeChange(cmd.OutOrStdout(), c, diffFormat, diffTree); err != nil {
		return err
	}
	if diffExitCode && !change.IsEmpty(c) {
		return ErrChanged
	}
	return nil
}
