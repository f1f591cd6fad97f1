package cmd

import (
	"errors"

	"schemadiff/core/change"
	"schemadiff/core/storage"
	"schemadiff/core/value"

	"github.com/spf13/cobra"
)

var (
	schemaOptions  []string
	schemaFormat   string
	schemaSnapshot string
	schemaFrom     string
	schemaTo       string
	schemaTree     bool
	schemaExitCode bool
)

// schemaCmd is the parent command for live schema operations.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect live schemas",
}

var schemaDiffCmd = &cobra.Command{
	Use:   "diff [schema]",
	Short: "Diff a live schema against a snapshot, or two snapshots",
	Long: `Diff schemas.

With --snapshot the stored snapshot is the source and the live schema the
target. With --from and --to two stored snapshots are compared and no
database connection is made.

Examples:
  schemadiff schema diff shop --snapshot release-1.4
  schemadiff schema diff --from release-1.3 --to release-1.4 --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchemaDiff,
}

func init() {
	f := schemaDiffCmd.Flags()
	f.StringArrayVarP(&schemaOptions, "option", "o", nil, "Comparison option as key=value (repeatable)")
	f.StringVar(&schemaFormat, "format", formatText, "Output format: text, json or yaml")
	f.StringVar(&schemaSnapshot, "snapshot", "", "Snapshot to compare the live schema with")
	f.StringVar(&schemaFrom, "from", "", "Source snapshot")
	f.StringVar(&schemaTo, "to", "", "Target snapshot")
	f.BoolVar(&schemaTree, "tree", false, "Include the change tree in json and yaml output")
	f.BoolVar(&schemaExitCode, "exit-code", false, "Fail when the schemas differ")
	schemaDiffCmd.MarkFlagsRequiredTogether("from", "to")
	schemaDiffCmd.MarkFlagsMutuallyExclusive("snapshot", "from")

	schemaCmd.AddCommand(schemaDiffCmd)
	RootCmd.AddCommand(schemaCmd)
}

func runSchemaDiff(cmd *cobra.Command, args []string) error {
	live := schemaSnapshot != ""
	switch {
	case live && len(args) != 1:
		return errors.New("schema name is required with --snapshot")
	case !live && schemaFrom == "":
		return errors.New("either --snapshot or --from and --to is required")
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	engine, err := e.engine(schemaOptions)
	if err != nil {
		return err
	}
	client, err := e.storage()
	if err != nil {
		return err
	}
	ctx, cancel := e.timeout()
	defer cancel()

	var source, target value.Value
	if live {
		if source, err = storage.LoadSnapshot(ctx, client, e.cfg.Storage.Bucket, schemaSnapshot); err != nil {
			return err
		}
		inspector, err := e.inspector()
		if err != nil {
			return err
		}
		schema, err := inspector.LoadSchema(ctx, args[0])
		if err != nil {
			return err
		}
		target = schema
	} else {
		if source, err = storage.LoadSnapshot(ctx, client, e.cfg.Storage.Bucket, schemaFrom); err != nil {
			return err
		}
		if target, err = storage.LoadSnapshot(ctx, client, e.cfg.Storage.Bucket, schemaTo); err != nil {
			return err
		}
	}

	c, err := engine.Diff(source, target)
	if err != nil {
		return err
	}
	if err := writeChange(cmd.OutOrStdout(), c, schemaFormat, schemaTree); err != nil {
		return err
	}
	if schemaExitCode && !change.IsEmpty(c) {
		return ErrChanged
	}
	return nil
}
