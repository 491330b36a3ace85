//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the gravity demo in a window.
func (Run) Demo() error {
	mg.Deps(Build.Shaders)
	fmt.Println("Run demo...")
	_, err := executeCmd("go", withArgs("run", "."), withStream())
	return err
}

// Runs the demo against the in-memory backend, no window or GPU needed.
func (Run) Headless() error {
	_, err := executeCmd("go", withArgs("run", "."), withEnv("ANIMA2D_CONFIG=anima2d.headless.toml"), withStream())
	return err
}

type Test mg.Namespace

// Runs every package's tests.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
