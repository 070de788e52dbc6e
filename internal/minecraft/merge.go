package minecraft

// PartialLibrary is a loader-provided overlay for a Library. Every field is
// optional; a present field overrides or extends the corresponding field of
// the base library it is merged onto.
type PartialLibrary struct {
	Downloads          *LibraryDownloads `json:"downloads,omitempty"`
	Extract            *LibraryExtract   `json:"extract,omitempty"`
	Name               *string           `json:"name,omitempty"`
	URL                *string           `json:"url,omitempty"`
	Natives            map[OsName]string `json:"natives,omitempty"`
	Rules              []Rule            `json:"rules,omitempty"`
	Checksums          []string          `json:"checksums,omitempty"`
	IncludeInClasspath *bool             `json:"include_in_classpath,omitempty"`
}

// MergeLibrary overlays partial onto base and returns the completed library.
// Scalars and the downloads artifact are replaced when the overlay supplies
// them, map fields are key-unioned with the overlay winning per key, and the
// rules list is concatenated overlay-first. Neither input is mutated.
func MergeLibrary(partial PartialLibrary, base Library) Library {
	merged := base

	if partial.Downloads != nil {
		if base.Downloads != nil {
			downloads := *base.Downloads
			if partial.Downloads.Artifact != nil {
				downloads.Artifact = partial.Downloads.Artifact
			}
			if partial.Downloads.Classifiers != nil {
				downloads.Classifiers = unionDownloads(base.Downloads.Classifiers, partial.Downloads.Classifiers)
			}
			merged.Downloads = &downloads
		} else {
			merged.Downloads = partial.Downloads
		}
	}
	if partial.Extract != nil {
		merged.Extract = partial.Extract
	}
	if partial.Name != nil {
		merged.Name = *partial.Name
	}
	if partial.URL != nil {
		merged.URL = *partial.URL
	}
	if partial.Natives != nil {
		merged.Natives = unionNatives(base.Natives, partial.Natives)
	}
	if partial.Rules != nil {
		if base.Rules != nil {
			rules := make([]Rule, 0, len(partial.Rules)+len(base.Rules))
			rules = append(rules, partial.Rules...)
			rules = append(rules, base.Rules...)
			merged.Rules = rules
		} else {
			merged.Rules = partial.Rules
		}
	}
	if partial.Checksums != nil {
		merged.Checksums = partial.Checksums
	}
	if partial.IncludeInClasspath != nil {
		merged.IncludeInClasspath = *partial.IncludeInClasspath
	}

	return merged
}

func unionDownloads(base, overlay map[string]LibraryDownload) map[string]LibraryDownload {
	if base == nil {
		return overlay
	}
	union := make(map[string]LibraryDownload, len(base)+len(overlay))
	for key, value := range base {
		union[key] = value
	}
	for key, value := range overlay {
		union[key] = value
	}
	return union
}

func unionNatives(base, overlay map[OsName]string) map[OsName]string {
	if base == nil {
		return overlay
	}
	union := make(map[OsName]string, len(base)+len(overlay))
	for key, value := range base {
		union[key] = value
	}
	for key, value := range overlay {
		union[key] = value
	}
	return union
}
