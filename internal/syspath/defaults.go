package syspath

import (
	"runtime"
)

// Visual Studio editions, most capable first
var vsEditions = []string{"Enterprise", "Professional", "Community", "BuildTools"}

const windowsKitsInclude = "C:/Program Files (x86)/Windows Kits/10/Include"

// gnuTriplets returns the multiarch triplets used by GCC installs for arch
func gnuTriplets(arch string) []string {
	switch arch {
	case "amd64":
		return []string{"x86_64-linux-gnu", "x86_64-redhat-linux", "x86_64-pc-linux-gnu"}
	case "arm64":
		return []string{"aarch64-linux-gnu", "aarch64-redhat-linux"}
	case "386":
		return []string{"i686-linux-gnu", "i386-linux-gnu"}
	case "arm":
		return []string{"arm-linux-gnueabihf"}
	case "riscv64":
		return []string{"riscv64-linux-gnu"}
	}
	return nil
}

// Default returns the built-in tables
func Default() *Heuristic {
	h := &Heuristic{
		Static: map[Platform][]string{
			Linux: {"/usr/local/include", "/usr/include"},
			Darwin: {
				"/usr/local/include",
				"/opt/homebrew/include",
				"/Library/Developer/CommandLineTools/SDKs/MacOSX.sdk/usr/include",
				"/usr/include",
			},
			FreeBSD: {"/usr/local/include", "/usr/include"},
			Unix:    {"/usr/local/include", "/usr/include"},
		},
		Layouts: map[Platform][]Layout{
			Linux: {
				{Root: "/usr/include/c++", Segments: []string{""}},
			},
			Darwin: {
				{Root: "/Library/Developer/CommandLineTools/usr/lib/clang", Segments: []string{"include"}},
				{Root: "/Applications/Xcode.app/Contents/Developer/Toolchains/XcodeDefault.xctoolchain/usr/lib/clang", Segments: []string{"include"}},
			},
			FreeBSD: {
				{Root: "/usr/include/c++", Segments: []string{""}},
			},
			Windows: {
				{Root: windowsKitsInclude, Segments: []string{"ucrt"}},
				{Root: windowsKitsInclude, Segments: []string{"um"}},
				{Root: windowsKitsInclude, Segments: []string{"shared"}},
			},
		},
	}

	for _, triplet := range gnuTriplets(runtime.GOARCH) {
		h.Static[Linux] = append(h.Static[Linux], "/usr/include/"+triplet)
		h.Layouts[Linux] = append(h.Layouts[Linux],
			Layout{Root: "/usr/lib/gcc/" + triplet, Segments: []string{"include"}})
	}

	// <root>/<year>/<edition>/VC/Tools/MSVC/<version>/include
	for _, root := range []string{"C:/Program Files/Microsoft Visual Studio", "C:/Program Files (x86)/Microsoft Visual Studio"} {
		for _, edition := range vsEditions {
			h.Layouts[Windows] = append(h.Layouts[Windows], Layout{
				Root:     root,
				Segments: []string{edition + "/VC/Tools/MSVC", "include"},
			})
		}
	}

	return h
}
