package main

import (
	"testing"

	"github.com/modforge/launchmeta/internal/modded"
)

func loaderManifest() *modded.Manifest {
	return &modded.Manifest{
		GameVersions: []modded.GameVersion{
			{
				ID: "1.20.1",
				Loaders: map[modded.LoaderType]modded.LoaderVersion{
					modded.LoaderTypeStable: {ID: "0.16.0", URL: "https://example.com/stable.json"},
					modded.LoaderTypeLatest: {ID: "0.17.0-beta", URL: "https://example.com/latest.json"},
				},
			},
			{
				ID: "24w09a",
				Loaders: map[modded.LoaderType]modded.LoaderVersion{
					modded.LoaderTypeLatest: {ID: "0.17.0-beta", URL: "https://example.com/latest.json"},
				},
			},
		},
	}
}

func TestResolveLoader_PrefersStable(t *testing.T) {
	composeLatest = false
	loader, err := resolveLoader(loaderManifest(), "fabric", "1.20.1", "")
	if err != nil {
		t.Fatalf("resolveLoader failed: %v", err)
	}
	if loader.ID != "0.16.0" {
		t.Errorf("loader = %s, want the stable version", loader.ID)
	}
}

func TestResolveLoader_LatestFlag(t *testing.T) {
	composeLatest = true
	t.Cleanup(func() { composeLatest = false })

	loader, err := resolveLoader(loaderManifest(), "fabric", "1.20.1", "")
	if err != nil {
		t.Fatalf("resolveLoader failed: %v", err)
	}
	if loader.ID != "0.17.0-beta" {
		t.Errorf("loader = %s, want the latest version", loader.ID)
	}
}

func TestResolveLoader_FallsBackToLatest(t *testing.T) {
	composeLatest = false
	loader, err := resolveLoader(loaderManifest(), "fabric", "24w09a", "")
	if err != nil {
		t.Fatalf("resolveLoader failed: %v", err)
	}
	if loader.ID != "0.17.0-beta" {
		t.Errorf("loader = %s, want latest when no stable exists", loader.ID)
	}
}

func TestResolveLoader_UnsupportedGameVersion(t *testing.T) {
	composeLatest = false
	if _, err := resolveLoader(loaderManifest(), "fabric", "1.7.10", ""); err == nil {
		t.Error("expected error for unsupported game version")
	}
}

func TestResolveLoader_ExplicitVersion(t *testing.T) {
	composeLatest = false
	loader, err := resolveLoader(loaderManifest(), "fabric", "1.20.1", "0.17.0-beta")
	if err != nil {
		t.Fatalf("resolveLoader failed: %v", err)
	}
	if loader.ID != "0.17.0-beta" {
		t.Errorf("loader = %s, want the named version", loader.ID)
	}
}

func TestResolveLoader_ExplicitVersionUnknown(t *testing.T) {
	composeLatest = false
	if _, err := resolveLoader(loaderManifest(), "fabric", "1.20.1", "9.9.9"); err == nil {
		t.Error("expected error for unknown loader version")
	}
}
