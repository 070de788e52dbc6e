// Package maven converts maven coordinates into repository-relative paths.
package maven

import (
	"fmt"
	"strings"
)

// ArtifactPath converts a maven coordinate into the path of the artifact
// within a repository. Supported forms are `group:name:version[@ext]` and
// `group:name:version:classifier[@ext]`; the extension defaults to jar.
func ArtifactPath(coordinate string) (string, error) {
	parts := strings.Split(coordinate, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return "", fmt.Errorf("unable to parse maven coordinate %q", coordinate)
	}

	group, name := parts[0], parts[1]
	if group == "" {
		return "", fmt.Errorf("unable to find package for library %q", coordinate)
	}
	if name == "" {
		return "", fmt.Errorf("unable to find name for library %q", coordinate)
	}
	groupPath := strings.ReplaceAll(group, ".", "/")

	if len(parts) == 3 {
		version, ext := splitExtension(parts[2])
		if version == "" {
			return "", fmt.Errorf("unable to find version for library %q", coordinate)
		}
		return fmt.Sprintf("%s/%s/%s/%s-%s.%s", groupPath, name, version, name, version, ext), nil
	}

	version := parts[2]
	if version == "" {
		return "", fmt.Errorf("unable to find version for library %q", coordinate)
	}
	classifier, ext := splitExtension(parts[3])
	if classifier == "" {
		return "", fmt.Errorf("unable to find classifier for library %q", coordinate)
	}
	return fmt.Sprintf("%s/%s/%s/%s-%s-%s.%s", groupPath, name, version, name, version, classifier, ext), nil
}

func splitExtension(segment string) (string, string) {
	if i := strings.IndexByte(segment, '@'); i >= 0 {
		return segment[:i], segment[i+1:]
	}
	return segment, "jar"
}
