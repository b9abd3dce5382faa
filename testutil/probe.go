// Package testutil type-checks throwaway source files against a package so
// tests can assert that misuse of an API does not compile.
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ProbeFile is the file name a probe is overlaid as. It never exists on disk.
const ProbeFile = "zz_compile_probe.go"

// TypeErrors loads the package in dir with src overlaid as one extra file and
// returns the messages of every error reported for it. The probe must declare
// the same package name as the files in dir.
func TypeErrors(dir string, src string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
		Dir:     abs,
		Overlay: map[string][]byte{filepath.Join(abs, ProbeFile): []byte(src)},
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", abs, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("load %s: no packages", abs)
	}

	var msgs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			msgs = append(msgs, e.Msg)
		}
	}
	return msgs, nil
}

// Probe wraps body into a function of package pkg, ready for TypeErrors.
func Probe(pkg string, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("func _() {\n")
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		b.WriteString("\t" + strings.TrimSpace(line) + "\n")
	}
	b.WriteString("}\n")
	return b.String()
}
