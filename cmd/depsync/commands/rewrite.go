package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depsync/internal/adapters/manifest"
	"go.trai.ch/depsync/internal/ui/style"
)

func (c *CLI) newUnrestrictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unrestrict",
		Short: "Strip equality version pins from the primary manifest",
		Long: `Remove explicit version restrictions from the primary manifest.

Only requirements pinned with a single == constraint are touched; requirements
with environment markers, range constraints, or names on the exclude list keep
their restrictions. The built-in exclude list is always applied; --exclude
extends it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exclude, err := cmd.Flags().GetStringArray("exclude")
			if err != nil {
				return err
			}
			if err := c.app.Unrestrict(exclude); err != nil {
				return err
			}
			fmt.Fprintln(c.out, style.SuccessLine("Removed version restrictions from 'setup.json'."))
			return nil
		},
	}
	cmd.Flags().StringArray("exclude", nil, "Package name to exclude from unrestricting (repeatable)")
	return cmd
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <snapshot-file>",
		Short: "Reinstate exact version pins from an environment snapshot",
		Long: `Apply the exact versions captured in SNAPSHOT-FILE to the primary manifest.

The snapshot file should contain the output of pip freeze: one name==version
line per installed package. Lines of any other shape are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			snapshot := manifest.NewRequirementsFile(args[0])
			if err := c.app.Update(snapshot); err != nil {
				return err
			}
			fmt.Fprintln(c.out, style.SuccessLine("Applied snapshot versions to 'setup.json'."))
			return nil
		},
	}
}
