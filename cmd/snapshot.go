package cmd

import (
	"context"
	"fmt"
	"time"

	"schemadiff/core/catalog"
	"schemadiff/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// snapshotCmd is the parent command for snapshot operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage stored schema snapshots",
}

var snapshotCaptureCmd = &cobra.Command{
	Use:   "capture <schema> <snapshot>",
	Short: "Capture a live schema into a named snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotCapture,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <snapshot>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

func init() {
	snapshotCmd.AddCommand(snapshotCaptureCmd, snapshotListCmd, snapshotDeleteCmd)
	RootCmd.AddCommand(snapshotCmd)
}

func (e *env) storage() (storage.Client, error) {
	client, err := storage.NewClient(e.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return client, nil
}

func (e *env) inspector() (*catalog.Inspector, error) {
	db, err := catalog.Connect(e.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return catalog.NewInspector(db), nil
}

func (e *env) timeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(e.cfg.Database.TimeoutSeconds)*time.Second)
}

func runSnapshotCapture(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	name, snapshot := args[0], args[1]
	if _, err := storage.SnapshotObject(snapshot); err != nil {
		return err
	}

	inspector, err := e.inspector()
	if err != nil {
		return err
	}
	client, err := e.storage()
	if err != nil {
		return err
	}

	ctx, cancel := e.timeout()
	defer cancel()

	schema, err := inspector.LoadSchema(ctx, name)
	if err != nil {
		return err
	}
	if err := storage.EnsureBucket(ctx, client, e.cfg.Storage.Bucket); err != nil {
		return err
	}
	if err := storage.SaveSnapshot(ctx, client, e.cfg.Storage.Bucket, snapshot, schema); err != nil {
		return err
	}

	e.logger.Info("Snapshot captured", zap.String("schema", name), zap.String("snapshot", snapshot))
	fmt.Fprintf(cmd.OutOrStdout(), "captured %s as %s\n", name, snapshot)
	return nil
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	client, err := e.storage()
	if err != nil {
		return err
	}
	ctx, cancel := e.timeout()
	defer cancel()

	names, err := storage.ListSnapshots(ctx, client, e.cfg.Storage.Bucket)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	client, err := e.storage()
	if err != nil {
		return err
	}
	ctx, cancel := e.timeout()
	defer cancel()

	if err := storage.DeleteSnapshot(ctx, client, e.cfg.Storage.Bucket, args[0]); err != nil {
		return err
	}
	e.logger.Info("Snapshot deleted", zap.String("snapshot", args[0]))
	return nil
}
