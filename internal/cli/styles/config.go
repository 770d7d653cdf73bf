package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config command output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths lists where voyage keeps its files.
func (r *ConfigRenderer) RenderPaths(configFile, schemaFile, databaseFile string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	keyStyle := r.theme.Faint
	pathStyle := r.theme.Plain

	return fmt.Sprintf(
		"\n  %s %s %s\n  %s %s %s\n  %s %s %s\n",
		iconStyle.Render(IconConfig), keyStyle.Render("Config  "), pathStyle.Render(configFile),
		iconStyle.Render(IconConfig), keyStyle.Render("Schema  "), pathStyle.Render(schemaFile),
		iconStyle.Render(IconDatabase), keyStyle.Render("Database"), pathStyle.Render(databaseFile),
	)
}

// RenderValid reports that the config file passed validation.
func (r *ConfigRenderer) RenderValid(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Ok)
	return fmt.Sprintf(
		"\n  %s Config %s is valid\n",
		iconStyle.Render(IconCheck),
		r.theme.Faint.Render(path),
	)
}

// RenderSchemaWritten reports where the JSON schema went.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Ok)
	return fmt.Sprintf(
		"\n  %s Schema written to %s\n  %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Faint.Render(path),
		r.theme.Faint.Render("Point your editor's TOML language server at it for completion."),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Danger)
	return fmt.Sprintf("\n  %s Config error: %v\n", iconStyle.Render(IconX), err)
}
