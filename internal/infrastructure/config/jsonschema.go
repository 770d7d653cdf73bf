package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/bnema/voyage/config.schema.json"

// GenerateSchema returns the JSON schema of config.toml, for editor completion.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Every section has defaults, so nothing is required in the file.
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = schemaID
	schema.Title = "Voyage Browser Configuration"
	schema.Description = "Configuration schema for voyage (config.toml)"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// WriteSchemaFile writes config.schema.json next to config.toml and returns its path.
func WriteSchemaFile() (string, error) {
	path, err := GetSchemaFile()
	if err != nil {
		return "", fmt.Errorf("failed to get schema path: %w", err)
	}
	data, err := GenerateSchema()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return path, nil
}
