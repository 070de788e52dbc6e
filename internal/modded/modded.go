// Package modded holds the models and fetch helpers for mod loader
// metadata: loader manifests and the partial version documents that overlay
// a base game version.
package modded

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modforge/launchmeta/internal/fetch"
	"github.com/modforge/launchmeta/internal/minecraft"
)

// PartialVersionInfo is the loader-provided fragment of a version document.
// It is merged onto the base version named by InheritsFrom.
type PartialVersionInfo struct {
	ID           string    `json:"id"`
	InheritsFrom string    `json:"inheritsFrom"`
	ReleaseTime  time.Time `json:"releaseTime"`
	Time         time.Time `json:"time"`
	MainClass    *string   `json:"mainClass,omitempty"`

	Arguments map[minecraft.ArgumentType][]minecraft.Argument `json:"arguments,omitempty"`
	Libraries []minecraft.Library                             `json:"libraries"`
	Type      minecraft.VersionType                           `json:"type"`

	// Forge-only fields.
	Data       map[string]minecraft.SidedDataEntry `json:"data,omitempty"`
	Processors []minecraft.Processor               `json:"processors,omitempty"`
}

// LoaderType classifies a loader version within a game version's entry.
type LoaderType string

const (
	// LoaderTypeLatest marks experimental loader versions that may not be
	// ready for normal use.
	LoaderTypeLatest LoaderType = "latest"
	// LoaderTypeStable marks the most recent stable loader version.
	LoaderTypeStable LoaderType = "stable"
)

// LoaderVersion is one version of a mod loader.
type LoaderVersion struct {
	ID  string `json:"id"`
	URL string `json:"url"` // location of the version's manifest
}

// GameVersion maps one game version to its available loader versions.
type GameVersion struct {
	ID      string                       `json:"id"`
	Loaders map[LoaderType]LoaderVersion `json:"loaders"`
}

// Manifest lists the game versions a mod loader supports.
type Manifest struct {
	GameVersions []GameVersion `json:"gameVersions"`
}

// FetchManifest downloads and decodes a mod loader manifest.
func FetchManifest(ctx context.Context, c *fetch.Client, url string) (*Manifest, error) {
	data, err := c.Fetch(ctx, url, "")
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &fetch.DecodeError{Err: err}
	}
	return &manifest, nil
}

// FetchPartialVersion downloads and decodes a loader's partial version
// document.
func FetchPartialVersion(ctx context.Context, c *fetch.Client, url string) (*PartialVersionInfo, error) {
	data, err := c.Fetch(ctx, url, "")
	if err != nil {
		return nil, err
	}
	var partial PartialVersionInfo
	if err := json.Unmarshal(data, &partial); err != nil {
		return nil, &fetch.DecodeError{Err: err}
	}
	return &partial, nil
}
