package ggblit

import "runtime/debug"

const ggModulePath = "github.com/gogpu/gg"

// LibraryVersion returns the version of the gg module linked into the
// running binary, or "(devel)" when it cannot be determined.
func LibraryVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	return libraryVersion(info)
}

func libraryVersion(info *debug.BuildInfo) string {
	if info.Main.Path == ggModulePath && info.Main.Version != "" {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path != ggModulePath {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "(devel)"
}
