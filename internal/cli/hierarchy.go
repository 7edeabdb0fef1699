package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yukikurage/bujo-tasks/internal/hierarchy"
)

func newHierarchyCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "hierarchy",
		Short: "Work with serialized task hierarchies",
	}
	cmd.PersistentFlags().StringVarP(&input, "input", "i", "-", "file holding the serialized hierarchy, - for stdin")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a hierarchy decodes and print its shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			f, err := hierarchy.Decode(s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d nodes, %d roots\n", f.Len(), len(f.Roots()))
			return nil
		},
	}

	subtreeCmd := &cobra.Command{
		Use:   "subtree <id>",
		Short: "Print a task and its descendants in pre-order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			ids, err := hierarchy.CollectSubtreeIDs(s, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), joinIDs(ids))
			return nil
		},
	}

	var strategy, target string
	detachCmd := &cobra.Command{
		Use:   "detach <id>",
		Short: "Detach a task and print the resulting hierarchies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			var st hierarchy.Strategy
			switch strategy {
			case "delete":
				st = hierarchy.Delete()
			case "reparent":
				st = hierarchy.Reparent()
			case "transfer":
				st = hierarchy.Transfer(target)
			default:
				return fmt.Errorf("unknown strategy %q (want delete, reparent or transfer)", strategy)
			}

			result, err := hierarchy.Detach(s, id, st)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "removed: %s\n", joinIDs(result.AffectedIDs))
			fmt.Fprintf(out, "source: %s\n", result.Source)
			if st.Kind == hierarchy.StrategyTransfer {
				fmt.Fprintf(out, "target: %s\n", result.Target)
			}
			return nil
		},
	}
	detachCmd.Flags().StringVar(&strategy, "strategy", "delete", "delete, reparent or transfer")
	detachCmd.Flags().StringVar(&target, "target", hierarchy.EmptyForest, "serialized target hierarchy for transfer")

	rebuildCmd := &cobra.Command{
		Use:   "rebuild <id>...",
		Short: "Serialize task IDs as a flat hierarchy",
		Long:  "Rebuild discards any nesting and lists the given IDs as sibling roots in order.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uint64, len(args))
			for i, a := range args {
				id, err := parseID(a)
				if err != nil {
					return err
				}
				ids[i] = id
			}
			s, err := hierarchy.FromFlatOrder(ids)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.AddCommand(validateCmd, subtreeCmd, detachCmd, rebuildCmd)
	return cmd
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func joinIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, " ")
}
