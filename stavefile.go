//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

const binary = "bin/qed-eval"

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles qed-eval with the version stamped from git.
func Build() error {
	st.Deps(Init)

	rebuild, err := target.Glob(binary, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Println("qed-eval is up to date")
		}
		return nil
	}

	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	ldflags := "-X main.version=" + strings.TrimSpace(version)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binary, "./cmd/qed-eval")
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestVerbose runs tests with verbose output.
func TestVerbose() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "-v", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	for _, a := range []string{"bin/", "coverage.out", "coverage.html"} {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds qed-eval and copies it to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	dst := bin + "/qed-eval"
	if runtime.GOOS == "windows" {
		dst += ".exe"
	}
	return sh.Copy(dst, binary)
}

// Eval namespace runs qed-eval against a local dev split.
type Eval st.Namespace

// corpusArgs reads QED_ANNOTATION and QED_PREDICTION, defaulting both to the dev split.
func corpusArgs() []string {
	annotation := os.Getenv("QED_ANNOTATION")
	if annotation == "" {
		annotation = "qed-dev.jsonlines"
	}
	prediction := os.Getenv("QED_PREDICTION")
	if prediction == "" {
		prediction = "qed-dev.jsonlines"
	}
	return []string{"--annotation", annotation, "--prediction", prediction}
}

// Score prints strict and non-strict reports.
func (Eval) Score() error {
	st.Deps(Build)
	for _, strict := range []string{"--strict=true", "--strict=false"} {
		args := append([]string{"score", strict}, corpusArgs()...)
		if err := sh.RunV("./"+binary, args...); err != nil {
			return err
		}
	}
	return nil
}

// Sweep ranks overlap thresholds by pair F1.
func (Eval) Sweep() error {
	st.Deps(Build)
	return sh.RunV("./"+binary, append([]string{"sweep"}, corpusArgs()...)...)
}

// Validate checks the annotation and prediction files for rejected records.
func (Eval) Validate() error {
	st.Deps(Build)
	args := corpusArgs()
	return sh.RunV("./"+binary, "validate", args[1], args[3])
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}
