// Package minecraft holds the models and fetch helpers for base game
// version metadata: the version manifest, per-version detail documents and
// asset indexes.
package minecraft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modforge/launchmeta/internal/fetch"
)

// VersionManifestURL is the default location of the version manifest.
const VersionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// VersionType is the release channel of a game version.
type VersionType string

const (
	VersionTypeRelease  VersionType = "release"
	VersionTypeSnapshot VersionType = "snapshot"
	VersionTypeOldAlpha VersionType = "old_alpha"
	VersionTypeOldBeta  VersionType = "old_beta"
)

// JavaProfile names the Java runtime flavor a game version requires.
type JavaProfile string

const (
	JavaProfileLegacy       JavaProfile = "jre-legacy"
	JavaProfileRuntimeAlpha JavaProfile = "java-runtime-alpha"
	JavaProfileRuntimeBeta  JavaProfile = "java-runtime-beta"
	JavaProfileRuntimeGamma JavaProfile = "java-runtime-gamma"
	JavaProfileExe          JavaProfile = "minecraft-java-exe"
)

// ParseJavaProfile validates a java profile string from a manifest.
func ParseJavaProfile(value string) (JavaProfile, error) {
	switch p := JavaProfile(value); p {
	case JavaProfileLegacy, JavaProfileRuntimeAlpha, JavaProfileRuntimeBeta,
		JavaProfileRuntimeGamma, JavaProfileExe:
		return p, nil
	default:
		return "", fmt.Errorf("invalid java profile %q", value)
	}
}

// LatestVersion names the newest release and snapshot of the game.
type LatestVersion struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// Version is one entry of the version manifest.
type Version struct {
	ID              string      `json:"id"`
	Type            VersionType `json:"type"`
	URL             string      `json:"url"`
	Time            time.Time   `json:"time"`
	ReleaseTime     time.Time   `json:"releaseTime"`
	SHA1            string      `json:"sha1"`
	ComplianceLevel uint32      `json:"complianceLevel"`
	// Mirror-provided extras; absent on the upstream manifest.
	AssetsIndexURL  string      `json:"assetsIndexUrl,omitempty"`
	AssetsIndexSHA1 string      `json:"assetsIndexSha1,omitempty"`
	JavaProfile     JavaProfile `json:"javaProfile,omitempty"`
}

// VersionManifest lists every known game version.
type VersionManifest struct {
	Latest   LatestVersion `json:"latest"`
	Versions []Version     `json:"versions"`
}

// AssetIndex points at the asset list of a game version.
type AssetIndex struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      uint32 `json:"size"`
	TotalSize uint32 `json:"totalSize"`
	URL       string `json:"url"`
}

// Asset is one downloadable game asset.
type Asset struct {
	Hash string `json:"hash"`
	Size uint32 `json:"size"`
}

// AssetsIndex maps asset file names to their download information.
type AssetsIndex struct {
	Objects map[string]Asset `json:"objects"`
}

// DownloadType distinguishes the game downloads of a version.
type DownloadType string

const (
	DownloadTypeClient         DownloadType = "client"
	DownloadTypeClientMappings DownloadType = "client_mappings"
	DownloadTypeServer         DownloadType = "server"
	DownloadTypeServerMappings DownloadType = "server_mappings"
	DownloadTypeWindowsServer  DownloadType = "windows_server"
)

// Download is the location and digest of one game file.
type Download struct {
	SHA1 string `json:"sha1"`
	Size uint32 `json:"size"`
	URL  string `json:"url"`
}

// LibraryDownload is the location and digest of one library file.
type LibraryDownload struct {
	Path string `json:"path"`
	SHA1 string `json:"sha1"`
	Size uint32 `json:"size"`
	URL  string `json:"url"`
}

// LibraryDownloads groups the files belonging to one library.
type LibraryDownloads struct {
	Artifact    *LibraryDownload           `json:"artifact,omitempty"`
	Classifiers map[string]LibraryDownload `json:"classifiers,omitempty"`
}

// RuleAction is the effect of a matched rule.
type RuleAction string

const (
	RuleActionAllow    RuleAction = "allow"
	RuleActionDisallow RuleAction = "disallow"
)

// OsName identifies an operating system and architecture in rules and
// natives maps.
type OsName string

const (
	OsOsx          OsName = "osx"
	OsOsxArm64     OsName = "osx-arm64"
	OsWindows      OsName = "windows"
	OsWindowsArm64 OsName = "windows-arm64"
	OsLinux        OsName = "linux"
	OsLinuxArm64   OsName = "linux-arm64"
	OsLinuxArm32   OsName = "linux-arm32"
	OsUnknown      OsName = "unknown"
)

// OsRule matches against the operating system of the player.
type OsRule struct {
	Name    OsName `json:"name,omitempty"`
	Version string `json:"version,omitempty"` // normally a regex
	Arch    string `json:"arch,omitempty"`
}

// FeatureRule matches against toggled launcher features.
type FeatureRule struct {
	IsDemoUser        *bool `json:"is_demo_user,omitempty"`
	HasDemoResolution *bool `json:"has_demo_resolution,omitempty"`
}

// Rule decides whether a library is downloaded, an argument is applied, etc.
type Rule struct {
	Action   RuleAction   `json:"action"`
	Os       *OsRule      `json:"os,omitempty"`
	Features *FeatureRule `json:"features,omitempty"`
}

// LibraryExtract controls extraction of a native library archive.
type LibraryExtract struct {
	Exclude []string `json:"exclude,omitempty"`
}

// JavaVersion is the Java runtime requirement of a game version.
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion uint32 `json:"majorVersion"`
}

// Library is a dependency of a game version. The maven coordinate format of
// Name is `groupId:artifactId:version`.
type Library struct {
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	Extract   *LibraryExtract   `json:"extract,omitempty"`
	Name      string            `json:"name"`
	URL       string            `json:"url,omitempty"`
	Natives   map[OsName]string `json:"natives,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
	// Checksums is only present on forge libraries.
	Checksums []string `json:"checksums,omitempty"`
	// IncludeInClasspath defaults to true when the manifest omits it.
	IncludeInClasspath bool `json:"include_in_classpath"`
}

// UnmarshalJSON applies the include_in_classpath default before decoding.
func (l *Library) UnmarshalJSON(data []byte) error {
	type alias Library
	aux := alias{IncludeInClasspath: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = Library(aux)
	return nil
}

// SidedDataEntry is a data value that differs between client and server
// installations. Forge-only.
type SidedDataEntry struct {
	Client string `json:"client"`
	Server string `json:"server"`
}

// Processor is a post-download processing step. Forge-only.
type Processor struct {
	// Jar is the maven coordinate of the processor's JAR.
	Jar string `json:"jar"`
	// Classpath lists maven coordinates included when running the processor.
	Classpath []string `json:"classpath"`
	Args      []string `json:"args"`
	// Outputs maps output keys to values; both sides can be data values.
	Outputs map[string]string `json:"outputs,omitempty"`
	// Sides the processor runs on: client, server or extract.
	Sides []string `json:"sides,omitempty"`
}

// VersionInfo is the complete metadata document of one game version.
type VersionInfo struct {
	Arguments              map[ArgumentType][]Argument `json:"arguments,omitempty"`
	AssetIndex             AssetIndex                  `json:"assetIndex"`
	Assets                 string                      `json:"assets"`
	Downloads              map[DownloadType]Download   `json:"downloads"`
	ID                     string                      `json:"id"`
	JavaVersion            *JavaVersion                `json:"javaVersion,omitempty"`
	Libraries              []Library                   `json:"libraries"`
	MainClass              string                      `json:"mainClass"`
	MinecraftArguments     string                      `json:"minecraftArguments,omitempty"` // legacy argument string
	MinimumLauncherVersion uint32                      `json:"minimumLauncherVersion"`
	ReleaseTime            time.Time                   `json:"releaseTime"`
	Time                   time.Time                   `json:"time"`
	Type                   VersionType                 `json:"type"`
	// Forge-only fields.
	Data       map[string]SidedDataEntry `json:"data,omitempty"`
	Processors []Processor               `json:"processors,omitempty"`
}

// FetchVersionManifest downloads and decodes the version manifest. An empty
// url selects the default upstream manifest.
func FetchVersionManifest(ctx context.Context, c *fetch.Client, url string) (*VersionManifest, error) {
	if url == "" {
		url = VersionManifestURL
	}
	data, err := c.Fetch(ctx, url, "")
	if err != nil {
		return nil, err
	}
	var manifest VersionManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &fetch.DecodeError{Err: err}
	}
	return &manifest, nil
}

// FetchVersionInfo downloads the detail document of a manifest entry,
// verified against the digest the manifest advertises.
func FetchVersionInfo(ctx context.Context, c *fetch.Client, v *Version) (*VersionInfo, error) {
	data, err := c.Fetch(ctx, v.URL, v.SHA1)
	if err != nil {
		return nil, err
	}
	var info VersionInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, &fetch.DecodeError{Err: err}
	}
	return &info, nil
}

// FetchAssetsIndex downloads the asset index of a version, verified against
// the digest in the version's detail document.
func FetchAssetsIndex(ctx context.Context, c *fetch.Client, info *VersionInfo) (*AssetsIndex, error) {
	data, err := c.Fetch(ctx, info.AssetIndex.URL, info.AssetIndex.SHA1)
	if err != nil {
		return nil, err
	}
	var index AssetsIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, &fetch.DecodeError{Err: err}
	}
	return &index, nil
}
