package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modforge/launchmeta/internal/config"
	"github.com/modforge/launchmeta/internal/fetch"
	"github.com/modforge/launchmeta/internal/minecraft"
	"github.com/modforge/launchmeta/internal/modded"
	"github.com/modforge/launchmeta/internal/utils/logger"
)

// Fetch command flags
var fetchOutput string = "" // Empty means print to stdout

// createFetchCommand creates the fetch subcommand and its children
func createFetchCommand() *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch metadata documents",
		Long: `Fetch metadata documents from the configured sources.

Available commands:
  manifest          Fetch the game version manifest
  version VERSION   Fetch the detail document of one game version
  assets VERSION    Fetch the asset index of one game version
  loader NAME       Fetch a mod loader manifest`,
	}

	fetchCmd.PersistentFlags().StringVarP(&fetchOutput, "output", "o", "",
		"Write the document to this file instead of stdout")

	fetchCmd.AddCommand(createFetchManifestCommand())
	fetchCmd.AddCommand(createFetchVersionCommand())
	fetchCmd.AddCommand(createFetchAssetsCommand())
	fetchCmd.AddCommand(createFetchLoaderCommand())

	return fetchCmd
}

func createFetchManifestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Fetch the game version manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := fetch.NewClient()
			manifest, err := minecraft.FetchVersionManifest(cmd.Context(), client, config.ManifestURL())
			if err != nil {
				return fmt.Errorf("fetching version manifest: %w", err)
			}
			logger.Logger().Infof("Fetched manifest with %d versions (latest release %s)",
				len(manifest.Versions), manifest.Latest.Release)
			return writeDocument(manifest, fetchOutput)
		},
	}
}

func createFetchVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version VERSION",
		Short: "Fetch the detail document of one game version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := fetch.NewClient()
			info, err := fetchVersionInfo(cmd, client, args[0])
			if err != nil {
				return err
			}
			return writeDocument(info, fetchOutput)
		},
	}
}

func createFetchAssetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assets VERSION",
		Short: "Fetch the asset index of one game version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := fetch.NewClient()
			info, err := fetchVersionInfo(cmd, client, args[0])
			if err != nil {
				return err
			}
			index, err := minecraft.FetchAssetsIndex(cmd.Context(), client, info)
			if err != nil {
				return fmt.Errorf("fetching asset index for %s: %w", args[0], err)
			}
			return writeDocument(index, fetchOutput)
		},
	}
}

func createFetchLoaderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "loader NAME",
		Short: "Fetch a mod loader manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, ok := config.LoaderManifestURL(args[0])
			if !ok {
				return fmt.Errorf("no manifest URL configured for loader %q", args[0])
			}
			client := fetch.NewClient()
			manifest, err := modded.FetchManifest(cmd.Context(), client, url)
			if err != nil {
				return fmt.Errorf("fetching %s manifest: %w", args[0], err)
			}
			return writeDocument(manifest, fetchOutput)
		},
	}
}

// fetchVersionInfo resolves a version id through the manifest and downloads
// its checksum-verified detail document.
func fetchVersionInfo(cmd *cobra.Command, client *fetch.Client, id string) (*minecraft.VersionInfo, error) {
	manifest, err := minecraft.FetchVersionManifest(cmd.Context(), client, config.ManifestURL())
	if err != nil {
		return nil, fmt.Errorf("fetching version manifest: %w", err)
	}

	for i := range manifest.Versions {
		if manifest.Versions[i].ID == id {
			info, err := minecraft.FetchVersionInfo(cmd.Context(), client, &manifest.Versions[i])
			if err != nil {
				return nil, fmt.Errorf("fetching version %s: %w", id, err)
			}
			return info, nil
		}
	}
	return nil, fmt.Errorf("version %q not found in manifest", id)
}

// writeDocument renders v as indented JSON to the given path, or stdout when
// the path is empty.
func writeDocument(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Logger().Infof("Wrote %s", path)
	return nil
}
