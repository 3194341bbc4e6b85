package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depsync/internal/ui/style"
)

func (c *CLI) newGenerateEnvironmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-environment-yml",
		Short: "Derive environment.yml from the primary manifest",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := c.app.GenerateEnvironment(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, style.SuccessLine("Generated 'environment.yml'."))
			return nil
		},
	}
}

func (c *CLI) newGenerateDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-rtd-reqs",
		Short: "Derive the documentation requirement list from the primary manifest",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := c.app.GenerateDocsRequirements(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, style.SuccessLine("Generated 'docs/requirements_for_rtd.txt'."))
			return nil
		},
	}
}
