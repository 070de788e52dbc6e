package modded

import "github.com/modforge/launchmeta/internal/minecraft"

// MergeVersion overlays a loader's partial version onto the base game
// version it inherits from and returns the completed document. It never
// fails; the base record supplies every field the overlay omits.
//
// The id, time, releaseTime and type fields always come from the overlay
// (they are mandatory on the partial shape). Libraries are concatenated
// overlay-first. Arguments are key-unioned, and for a key present on both
// sides the overlay's list replaces the base list wholesale rather than
// being appended. That differs from the per-library rules concatenation on
// purpose; keep the asymmetry.
func MergeVersion(partial PartialVersionInfo, base minecraft.VersionInfo) minecraft.VersionInfo {
	merged := base

	merged.ID = partial.ID
	merged.Time = partial.Time
	merged.ReleaseTime = partial.ReleaseTime
	merged.Type = partial.Type

	if partial.MainClass != nil {
		merged.MainClass = *partial.MainClass
	}

	libraries := make([]minecraft.Library, 0, len(partial.Libraries)+len(base.Libraries))
	libraries = append(libraries, partial.Libraries...)
	libraries = append(libraries, base.Libraries...)
	merged.Libraries = libraries

	if partial.Arguments != nil {
		if base.Arguments != nil {
			arguments := make(map[minecraft.ArgumentType][]minecraft.Argument, len(base.Arguments)+len(partial.Arguments))
			for kind, list := range base.Arguments {
				arguments[kind] = list
			}
			for kind, list := range partial.Arguments {
				arguments[kind] = list
			}
			merged.Arguments = arguments
		} else {
			merged.Arguments = partial.Arguments
		}
	}

	if partial.Data != nil {
		merged.Data = partial.Data
	}
	if partial.Processors != nil {
		merged.Processors = partial.Processors
	}

	return merged
}
