package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modforge/launchmeta/internal/config"
	"github.com/modforge/launchmeta/internal/fetch"
	"github.com/modforge/launchmeta/internal/modded"
	"github.com/modforge/launchmeta/internal/utils/logger"
)

// Compose command flags
var (
	composeOutput string = ""    // Empty means print to stdout
	composeLatest bool   = false // Pick the latest loader instead of stable
)

// createComposeCommand creates the compose subcommand
func createComposeCommand() *cobra.Command {
	composeCmd := &cobra.Command{
		Use:   "compose LOADER VERSION [LOADER-VERSION]",
		Short: "Merge a mod loader onto a base game version",
		Long: `Resolve a mod loader for the given game version, fetch its partial
version document together with the base version it inherits from, and
emit the merged, launch-ready version document.

The stable loader version is used unless --latest is given or an explicit
loader version id is named.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaderVersion := ""
			if len(args) == 3 {
				loaderVersion = args[2]
			}
			return runCompose(cmd, args[0], args[1], loaderVersion)
		},
	}

	composeCmd.Flags().StringVarP(&composeOutput, "output", "o", "",
		"Write the merged document to this file instead of stdout")
	composeCmd.Flags().BoolVar(&composeLatest, "latest", false,
		"Use the latest loader version instead of the stable one")

	return composeCmd
}

func runCompose(cmd *cobra.Command, loaderName, gameVersion, loaderVersion string) error {
	url, ok := config.LoaderManifestURL(loaderName)
	if !ok {
		return fmt.Errorf("no manifest URL configured for loader %q", loaderName)
	}

	client := fetch.NewClient()

	manifest, err := modded.FetchManifest(cmd.Context(), client, url)
	if err != nil {
		return fmt.Errorf("fetching %s manifest: %w", loaderName, err)
	}

	loader, err := resolveLoader(manifest, loaderName, gameVersion, loaderVersion)
	if err != nil {
		return err
	}
	logger.Logger().Infof("Resolved %s %s for game version %s", loaderName, loader.ID, gameVersion)

	partial, err := modded.FetchPartialVersion(cmd.Context(), client, loader.URL)
	if err != nil {
		return fmt.Errorf("fetching %s version %s: %w", loaderName, loader.ID, err)
	}

	base, err := fetchVersionInfo(cmd, client, partial.InheritsFrom)
	if err != nil {
		return err
	}

	merged := modded.MergeVersion(*partial, *base)
	logger.Logger().Infof("Composed version %s with %d libraries", merged.ID, len(merged.Libraries))
	return writeDocument(merged, composeOutput)
}

// resolveLoader picks the loader version for one game version. An explicit
// loaderVersion id wins, otherwise stable is preferred with a fallback to
// latest only when asked for or when no stable version exists.
func resolveLoader(manifest *modded.Manifest, loaderName, gameVersion, loaderVersion string) (*modded.LoaderVersion, error) {
	var entry *modded.GameVersion
	for i := range manifest.GameVersions {
		if manifest.GameVersions[i].ID == gameVersion {
			entry = &manifest.GameVersions[i]
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%s does not support game version %q", loaderName, gameVersion)
	}

	if loaderVersion != "" {
		for _, loader := range entry.Loaders {
			if loader.ID == loaderVersion {
				return &loader, nil
			}
		}
		return nil, fmt.Errorf("%s version %q is not listed for game version %q", loaderName, loaderVersion, gameVersion)
	}

	want := modded.LoaderTypeStable
	if composeLatest {
		want = modded.LoaderTypeLatest
	}
	if loader, ok := entry.Loaders[want]; ok {
		return &loader, nil
	}
	if !composeLatest {
		if loader, ok := entry.Loaders[modded.LoaderTypeLatest]; ok {
			logger.Logger().Warnf("No stable %s version for %s, using latest", loaderName, gameVersion)
			return &loader, nil
		}
	}
	return nil, fmt.Errorf("no %s loader version listed for game version %q", want, gameVersion)
}
