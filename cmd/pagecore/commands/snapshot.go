package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagekit/pagecore/snapshot"
)

// NewSnapshotCommand creates the snapshot inspection command
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot file utilities",
	}

	cmd.AddCommand(newSnapshotInspectCommand())
	return cmd
}

func newSnapshotInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Decode and validate a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			snap, err := snapshot.Decode[json.RawMessage](b)
			if err != nil {
				return err
			}

			fmt.Printf("window: (%d,%d)  capacity: %d  entries: %d\n",
				snap.StartContextPage, snap.EndContextPage, snap.Capacity, len(snap.Entries))
			for _, e := range snap.Entries {
				dirty := ""
				if e.WasDirty {
					dirty = "  dirty"
				}
				fmt.Printf("  page %-4d %-7s %d items%s\n", e.Page, e.Type, len(e.Data), dirty)
			}
			return nil
		},
	}
}
