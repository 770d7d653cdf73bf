package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/voyage/internal/cli/styles"
	"github.com/bnema/voyage/internal/infrastructure/config"
)

var schemaStdout bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where config, schema and database live",
	RunE:  runConfigPath,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file",
	Long:  `Loads config.toml with environment overrides applied and reports the first problems found.`,
	RunE:  runConfigValidate,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write the JSON schema for config.toml",
	Long: `Writes config.schema.json next to config.toml so TOML language servers
can offer completion and validation. Use --stdout to print it instead.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configValidateCmd, configSchemaCmd)
	configSchemaCmd.Flags().BoolVar(&schemaStdout, "stdout", false, "print the schema instead of writing it")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	configFile := app.ConfigManager.GetConfigFile()
	if configFile == "" {
		if configFile, err = config.GetConfigFile(); err != nil {
			return err
		}
	}
	schemaFile, err := config.GetSchemaFile()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderPaths(configFile, schemaFile, app.Config.Database.Path))
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	if app.ConfigErr != nil {
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderError(app.ConfigErr))
		return fmt.Errorf("config is invalid")
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderValid(app.ConfigManager.GetConfigFile()))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	if schemaStdout {
		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	path, err := config.WriteSchemaFile()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.NewConfigRenderer(styles.NewTheme()).RenderSchemaWritten(path))
	return nil
}
