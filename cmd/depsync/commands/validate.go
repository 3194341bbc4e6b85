package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depsync/internal/ui/style"
)

func (c *CLI) newValidateEnvironmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-environment-yml",
		Short: "Check environment.yml against the primary manifest",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := c.app.ValidateEnvironment(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, style.SuccessLine("Conda dependency specification is consistent."))
			return nil
		},
	}
}

func (c *CLI) newValidateDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-rtd-reqs",
		Short: "Check the documentation requirement list against the primary manifest",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := c.app.ValidateDocsRequirements(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, style.SuccessLine("Documentation requirement specification is consistent."))
			return nil
		},
	}
}

func (c *CLI) newValidatePyprojectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-pyproject-toml",
		Short: "Check the build requirements of pyproject.toml",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := c.app.ValidateBuildDescriptor(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, style.SuccessLine("Build dependency specification is consistent."))
			return nil
		},
	}
}

func (c *CLI) newValidateAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-all",
		Short: "Run every consistency check, stopping at the first failure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := []struct {
				run     func() error
				message string
			}{
				{c.app.ValidateEnvironment, "Conda dependency specification is consistent."},
				{c.app.ValidateBuildDescriptor, "Build dependency specification is consistent."},
				{c.app.ValidateDocsRequirements, "Documentation requirement specification is consistent."},
			}
			for _, check := range checks {
				if err := check.run(); err != nil {
					return err
				}
				fmt.Fprintln(c.out, style.SuccessLine(check.message))
			}
			return nil
		},
	}
}
