package tracker

import (
	"runtime"
	"runtime/debug"
)

// RuntimeInfo describes the running binary.
type RuntimeInfo struct {
	GoVersion     string `json:"go_version"`
	Compiler      string `json:"compiler"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Module        string `json:"module,omitempty"`
	ModuleVersion string `json:"module_version,omitempty"`
}

// ReadRuntimeInfo collects the toolchain, platform and main module version.
func ReadRuntimeInfo() RuntimeInfo {
	info := RuntimeInfo{
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Module = bi.Main.Path
		info.ModuleVersion = bi.Main.Version
	}
	return info
}

// Platform returns "os/arch".
func (r RuntimeInfo) Platform() string {
	return r.OS + "/" + r.Arch
}
