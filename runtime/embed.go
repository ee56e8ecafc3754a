// Package runtime provides the runtime library contract emitted
// Umbrella programs link against (spec.md §4.4).
//
// It has two faces. First, cpp/ carries the reference compiler's C++
// runtime (Array<T>, Map<K,V>, the static namespaces, Database,
// Thread, Mutex, Process, Timer) verbatim, embedded into the Go
// binary so the driver can materialize it next to emitted source
// without a separate install step. Second, this package's own Go
// types (Sequence, Mapping, the String helpers, Math, Regex) are a
// parallel Go-native model of the same contract, used to pin down
// the contract's semantics in Go tests without compiling or running
// any C++ (spec.md §8 property 9).
package runtime

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed cpp/runtime.h cpp/runtime.cpp cpp/advanced.h cpp/advanced.cpp
var cppSources embed.FS

// WriteTo materializes the embedded C++ runtime sources under
// dir/runtime/, the include path the emitted preamble expects
// (`#include "runtime/runtime.h"`). It is idempotent: existing files
// are overwritten.
func WriteTo(dir string) error {
	target := filepath.Join(dir, "runtime")
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	return fs.WalkDir(cppSources, "cpp", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := cppSources.ReadFile(path)
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		return os.WriteFile(filepath.Join(target, name), data, 0o644)
	})
}
