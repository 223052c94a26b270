//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "bin/taxgraph"
	mainPkg = "./cmd/taxgraph"
)

// Build tidies deps, then compiles to ./bin/taxgraph.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building taxgraph...")
	return sh.Run("go", "build", "-o", binary, mainPkg)
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Vet runs go vet over every package.
func Vet() error {
	fmt.Println(">> go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Test runs all unit tests with the race detector.
func Test() error {
	mg.Deps(Vet)
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Chart builds then renders the example scenario's marginal-rate chart to ./bin/sweep.pdf.
func Chart() error {
	mg.Deps(Build)
	fmt.Println(">> Rendering bin/sweep.pdf...")
	return sh.RunV(binary, "sweep",
		"--status", "single", "--wages", "90000", "--ss", "24000", "--senior",
		"--format", "pdf", "--out", "bin/sweep.pdf")
}

// Clean removes build artifacts and generated reports.
func Clean() error {
	fmt.Println(">> Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	return sh.Run("find", ".", "-maxdepth", "1", "-name", "taxgraph_report_*", "-delete")
}

// Install builds and installs the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", mainPkg)
}

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
