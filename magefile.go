//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles both executables into ./bin
func Build() error {
	mg.Deps(BuildShowRed, BuildReadRed)
	fmt.Println("Compilation finished")
	return nil
}

func BuildShowRed() error {
	fmt.Println("Building showred executable...")
	return goCommand("build", "-o", "./bin/showred", "./showred")
}

func BuildReadRed() error {
	fmt.Println("Building readred executable...")
	return goCommand("build", "-o", "./bin/readred", "./readred")
}

// Test runs the unit tests. The HDF5 packages need the same CGO flags
// as the build.
func Test() error {
	fmt.Println("Running tests...")
	return goCommand("test", "./...")
}

func goCommand(args ...string) error {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
