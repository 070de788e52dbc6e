package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modforge/launchmeta/internal/config/schema"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	configSchemaName          = "launchmeta-config.schema.json"
	versionManifestSchemaName = "version-manifest.schema.json"
	loaderManifestSchemaName  = "loader-manifest.schema.json"
)

// ValidateAgainstSchema compiles the given schema bytes and runs it against
// the JSON in data.  The `name` is only used to identify the schema in errors.
func ValidateAgainstSchema(name string, schemaBytes, data []byte, ref string) error {
	comp := jsonschema.NewCompiler()
	if err := comp.AddResource(name, bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("loading schema %q: %w", name, err)
	}

	// If ref is empty we compile the root; otherwise compile the subschema.
	target := name
	if ref != "" {
		switch {
		case strings.HasPrefix(ref, "#"):
			target = name + ref
		case strings.HasPrefix(ref, "/"):
			target = name + "#" + ref
		default:
			// treat as anchor name
			target = name + "#" + ref
		}
	}
	sch, err := comp.Compile(target)
	if err != nil {
		return fmt.Errorf("compiling schema %q: %w", name, err)
	}

	// unmarshal into interface{} so the validator can walk it
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON for %q: %w", name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation against %q failed: %w", name, err)
	}
	return nil
}

// ValidateConfigJSON runs the global config schema against data
func ValidateConfigJSON(data []byte) error {
	return ValidateAgainstSchema(
		configSchemaName,
		schema.ConfigSchema,
		data,
		"",
	)
}

// ValidateVersionManifestJSON runs the version manifest schema against data
func ValidateVersionManifestJSON(data []byte) error {
	return ValidateAgainstSchema(
		versionManifestSchemaName,
		schema.VersionManifestSchema,
		data,
		"",
	)
}

// ValidateLoaderManifestJSON runs the loader manifest schema against data
func ValidateLoaderManifestJSON(data []byte) error {
	return ValidateAgainstSchema(
		loaderManifestSchemaName,
		schema.LoaderManifestSchema,
		data,
		"",
	)
}
