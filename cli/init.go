package cli

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

//go:embed _starter
var starterFS embed.FS

var execCommand = exec.Command

var InitCommand = &cli.Command{
	Name:  "init",
	Usage: "Create a new project from the default starter",
	Action: func(c *cli.Context) error {
		targetDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		fmt.Println("🚀 Creating boilerplate project in:", targetDir)

		err = copyEmbeddedDir(starterFS, "_starter", targetDir)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		mainFile := filepath.Join(targetDir, "main.go")
		modFile := filepath.Join(targetDir, "go.mod")

		if _, err := os.Stat(mainFile); err == nil {
			if _, err := os.Stat(modFile); os.IsNotExist(err) {
				moduleName := filepath.Base(targetDir)
				fmt.Println("🔧 Initialising Go module:", moduleName)

				if err := runGo(targetDir, "mod", "init", moduleName); err != nil {
					return fmt.Errorf("failed to run go mod init: %w", err)
				}
				if err := runGo(targetDir, "mod", "tidy"); err != nil {
					return fmt.Errorf("failed to run go mod tidy: %w", err)
				}
			}
		}

		fmt.Println("✅ Project created successfully.")
		fmt.Println("▶  Run: boilerplate dev")
		return nil
	},
}

func runGo(dir string, args ...string) error {
	cmd := execCommand("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = dir
	return cmd.Run()
}

// copyEmbeddedDir copies sourceDir into targetDir. Files that already exist
// in targetDir are left untouched.
func copyEmbeddedDir(source fs.FS, sourceDir string, targetDir string) error {
	return fs.WalkDir(source, sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		targetPath := filepath.Join(targetDir, rel)

		if d.IsDir() {
			return os.MkdirAll(targetPath, os.ModePerm)
		}

		if _, err := os.Stat(targetPath); err == nil {
			fmt.Println("⏭  Keeping existing:", rel)
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		data, err := fs.ReadFile(source, path)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), os.ModePerm); err != nil {
			return err
		}

		return os.WriteFile(targetPath, data, 0644)
	})
}
