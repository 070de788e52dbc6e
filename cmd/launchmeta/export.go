package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/modforge/launchmeta/internal/config"
	"github.com/modforge/launchmeta/internal/fetch"
	"github.com/modforge/launchmeta/internal/maven"
	"github.com/modforge/launchmeta/internal/minecraft"
	"github.com/modforge/launchmeta/internal/prefetch"
	"github.com/modforge/launchmeta/internal/utils/logger"
)

// assetObjectURL is where the content-addressed asset objects live.
const assetObjectURL = "https://resources.download.minecraft.net/"

// Export command flags
var (
	exportDir          string = "" // Empty means the configured output dir
	exportAssets       bool   = false
	exportGzip         bool   = false
	exportSkipExisting bool   = true
)

// createExportCommand creates the export subcommand
func createExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export [VERSION]",
		Short: "Download every file a game version needs",
		Long: `Download the game jars and libraries of one game version into a local
directory, verifying each file against its published checksum. Pass
--assets to also mirror the version's asset objects.

Without a version argument, every version document listed in the version
manifest is downloaded instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runExportManifest(cmd)
			}
			return runExport(cmd, args[0])
		},
	}

	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "",
		"Destination directory (defaults to the configured output dir)")
	exportCmd.Flags().BoolVar(&exportAssets, "assets", false,
		"Also download the version's asset objects")
	exportCmd.Flags().BoolVar(&exportGzip, "gzip", false,
		"Store downloaded files gzip-compressed")
	exportCmd.Flags().BoolVar(&exportSkipExisting, "skip-existing", true,
		"Keep files that already exist in the destination")

	return exportCmd
}

func runExport(cmd *cobra.Command, versionID string) error {
	destDir, err := resolveExportDir()
	if err != nil {
		return err
	}

	client := fetch.NewClient()
	info, err := fetchVersionInfo(cmd, client, versionID)
	if err != nil {
		return err
	}

	docs, err := collectDocuments(info, config.Mirrors())
	if err != nil {
		return err
	}
	if exportAssets {
		index, err := minecraft.FetchAssetsIndex(cmd.Context(), client, info)
		if err != nil {
			return fmt.Errorf("fetching asset index for %s: %w", versionID, err)
		}
		docs = append(docs, assetDocuments(index)...)
	}

	return exportDocuments(cmd, client, docs, destDir)
}

// runExportManifest downloads every version document listed in the version
// manifest into the destination directory.
func runExportManifest(cmd *cobra.Command) error {
	destDir, err := resolveExportDir()
	if err != nil {
		return err
	}

	client := fetch.NewClient()
	manifest, err := minecraft.FetchVersionManifest(cmd.Context(), client, config.ManifestURL())
	if err != nil {
		return fmt.Errorf("fetching version manifest: %w", err)
	}

	docs := make([]prefetch.Document, 0, len(manifest.Versions))
	for _, v := range manifest.Versions {
		docs = append(docs, prefetch.Document{
			URL:  v.URL,
			SHA1: v.SHA1,
			Name: filepath.Join("versions", v.ID+".json"),
		})
	}
	return exportDocuments(cmd, client, docs, destDir)
}

// resolveExportDir returns the --dir flag value or the configured output dir.
func resolveExportDir() (string, error) {
	if exportDir != "" {
		return exportDir, nil
	}
	if err := config.EnsureOutputDir(); err != nil {
		return "", err
	}
	return config.OutputDir()
}

// exportDocuments runs one tagged download batch and reports failures.
func exportDocuments(cmd *cobra.Command, client *fetch.Client, docs []prefetch.Document, destDir string) error {
	run := uuid.New().String()[:8]
	logger.Logger().Infof("[%s] Exporting %d files to %s", run, len(docs), destDir)

	results := prefetch.FetchDocuments(cmd.Context(), client, docs, destDir, prefetch.Options{
		Workers:      config.Workers(),
		Gzip:         exportGzip,
		SkipExisting: exportSkipExisting,
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Logger().Errorf("[%s] %s: %v", run, r.Name, r.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to download", failed, len(results))
	}
	logger.Logger().Infof("[%s] Exported %d files", run, len(results))
	return nil
}

// collectDocuments lists the game jars and library files of a version.
// Libraries without published download entries fall back to their Maven
// coordinate, resolved against the library's own URL when it carries one
// and against the configured mirrors otherwise.
func collectDocuments(info *minecraft.VersionInfo, mirrors []string) ([]prefetch.Document, error) {
	var docs []prefetch.Document

	for side, dl := range info.Downloads {
		ext := ".jar"
		if side == minecraft.DownloadTypeClientMappings || side == minecraft.DownloadTypeServerMappings {
			ext = ".txt"
		}
		docs = append(docs, prefetch.Document{
			URL:  dl.URL,
			SHA1: dl.SHA1,
			Name: fmt.Sprintf("versions/%s/%s%s", info.ID, side, ext),
		})
	}

	for _, lib := range info.Libraries {
		if lib.Downloads != nil {
			if a := lib.Downloads.Artifact; a != nil && a.URL != "" {
				docs = append(docs, prefetch.Document{
					URL:  a.URL,
					SHA1: a.SHA1,
					Name: filepath.Join("libraries", a.Path),
				})
			}
			for _, c := range lib.Downloads.Classifiers {
				if c.URL == "" {
					continue
				}
				docs = append(docs, prefetch.Document{
					URL:  c.URL,
					SHA1: c.SHA1,
					Name: filepath.Join("libraries", c.Path),
				})
			}
			continue
		}
		if lib.URL == "" && len(mirrors) == 0 {
			logger.Logger().Warnf("library %s has no download source and no mirrors are configured, skipping", lib.Name)
			continue
		}
		path, err := maven.ArtifactPath(lib.Name)
		if err != nil {
			return nil, fmt.Errorf("library %s: %w", lib.Name, err)
		}
		doc := prefetch.Document{Name: filepath.Join("libraries", path)}
		if lib.URL != "" {
			doc.URL = lib.URL + path
		} else {
			doc.Path = path
			doc.Mirrors = mirrors
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// assetDocuments lists a version's asset objects by their content hash.
// Entries whose hash is too short to address an object are dropped.
func assetDocuments(index *minecraft.AssetsIndex) []prefetch.Document {
	docs := make([]prefetch.Document, 0, len(index.Objects))
	for name, obj := range index.Objects {
		if len(obj.Hash) < 2 {
			logger.Logger().Warnf("asset %s has malformed hash %q, skipping", name, obj.Hash)
			continue
		}
		sub := obj.Hash[:2] + "/" + obj.Hash
		docs = append(docs, prefetch.Document{
			URL:  assetObjectURL + sub,
			SHA1: obj.Hash,
			Name: filepath.Join("assets", "objects", sub),
		})
	}
	return docs
}
