package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/modforge/launchmeta/internal/config/validate"
	"github.com/modforge/launchmeta/internal/utils/logger"
	"github.com/modforge/launchmeta/internal/utils/security"
)

// createValidateCommand creates the validate subcommand
func createValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate TYPE FILE",
		Short: "Validate a local document against its schema",
		Long: `Validate a local JSON or YAML document against the built-in schema for
its type.

Supported types:
  config     a launchmeta configuration file
  manifest   a game version manifest
  loader     a mod loader manifest`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], args[1])
		},
	}
}

func runValidate(docType, path string) error {
	data, err := security.SafeReadFile(path, security.RejectSymlinks)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// Schemas are applied to JSON. YAML documents are converted first,
	// which also covers plain JSON input.
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	switch strings.ToLower(docType) {
	case "config":
		err = validate.ValidateConfigJSON(jsonData)
	case "manifest":
		err = validate.ValidateVersionManifestJSON(jsonData)
	case "loader":
		err = validate.ValidateLoaderManifestJSON(jsonData)
	default:
		return fmt.Errorf("unknown document type %q (expected config, manifest, or loader)", docType)
	}
	if err != nil {
		return fmt.Errorf("%s is not a valid %s document: %w", path, docType, err)
	}

	logger.Logger().Infof("%s is a valid %s document", path, docType)
	fmt.Printf("%s: OK\n", path)
	return nil
}
