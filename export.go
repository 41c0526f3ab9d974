package osti

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/karstenskyt/osti/jsonschema"
)

// SchemaFileName is the conventional name of the exported artifact.
const SchemaFileName = "osti.schema.json"

// JSONSchema exports the SessionPlan type graph as a self-contained JSON
// Schema document.
func JSONSchema() (*jsonschema.Document, error) {
	root, err := SessionPlanSchema.JSONSchema()
	if err != nil {
		return nil, err
	}
	return jsonschema.Export(root, jsonschema.Meta{
		ID:          SchemaID(),
		Title:       SchemaTitle,
		Description: SchemaDescription(),
	})
}

// SchemaJSON returns the indented bytes of the exported document.
func SchemaJSON() ([]byte, error) {
	doc, err := JSONSchema()
	if err != nil {
		return nil, err
	}
	return doc.MarshalIndent()
}

// WriteSchemaFile writes the exported document to path, creating parent
// directories. Nothing is written when export fails.
func WriteSchemaFile(path string) error {
	b, err := SchemaJSON()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
