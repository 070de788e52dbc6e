package schema

import _ "embed"

//go:embed launchmeta-config.schema.json
var ConfigSchema []byte

//go:embed version-manifest.schema.json
var VersionManifestSchema []byte

//go:embed loader-manifest.schema.json
var LoaderManifestSchema []byte
