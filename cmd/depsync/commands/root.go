// Package commands implements the CLI commands for the depsync tool.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/depsync/internal/app"
	"go.trai.ch/depsync/internal/ui/output"
)

// AppFactory builds the application for the given project root directory.
type AppFactory func(root string) (*app.App, error)

// CLI represents the command line interface for depsync.
type CLI struct {
	app     *app.App
	newApp  AppFactory
	out     io.Writer
	rootCmd *cobra.Command
}

// New creates a new CLI instance. The app is constructed lazily once the
// project root flag is known.
func New(newApp AppFactory) *CLI {
	rootCmd := &cobra.Command{
		Use:   "depsync",
		Short: "Keep dependency declarations consistent across manifest files",
		Long: `depsync reads the package requirements declared in setup.json,
environment.yml, pyproject.toml and the generated documentation requirement
list, verifies that they denote the same logical set of requirements, and can
rewrite the version restrictions of setup.json: "unrestrict" strips the exact
pins, "update" reinstates them from a pip freeze snapshot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("root", "C", ".", "Path to the project directory")

	c := &CLI{
		newApp:  newApp,
		out:     output.New(os.Stdout),
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		root, err := cmd.Flags().GetString("root")
		if err != nil {
			return err
		}
		c.app, err = c.newApp(root)
		return err
	}

	rootCmd.AddCommand(c.newGenerateEnvironmentCmd())
	rootCmd.AddCommand(c.newGenerateDocsCmd())
	rootCmd.AddCommand(c.newValidateEnvironmentCmd())
	rootCmd.AddCommand(c.newValidateDocsCmd())
	rootCmd.AddCommand(c.newValidatePyprojectCmd())
	rootCmd.AddCommand(c.newValidateAllCmd())
	rootCmd.AddCommand(c.newUnrestrictCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects the CLI's user-facing output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}
