// Package main provides a documentation generator for the retained library.
// It generates Markdown API documentation from Go source code using
// gomarkdoc, driven by an optional docgen.yaml at the repository root.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// Config represents the optional docgen.yaml configuration.
type Config struct {
	// Output is the directory for generated docs, relative to the repo
	// root. Defaults to docs/api.
	Output string `yaml:"output,omitempty"`
	// Packages lists package directories to document, relative to the
	// repo root. Defaults to the public packages under pkg/.
	Packages []string `yaml:"packages,omitempty"`
}

func main() {
	root, err := findRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding repo root: %v\n", err)
		os.Exit(1)
	}

	modPath, err := modulePath(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading go.mod: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading docgen.yaml: %v\n", err)
		os.Exit(1)
	}

	if err := ensureGomarkdoc(); err != nil {
		fmt.Fprintf(os.Stderr, "Error ensuring gomarkdoc: %v\n", err)
		os.Exit(1)
	}

	outDir := filepath.Join(root, filepath.FromSlash(cfg.Output))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	for _, pkg := range cfg.Packages {
		fmt.Printf("Generating docs for %s...\n", pkg)
		if err := generatePackageDocs(root, modPath, pkg, outDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating docs for %s: %v\n", pkg, err)
			os.Exit(1)
		}
	}

	fmt.Printf("\nDocumentation written to %s\n", outDir)
}

// findRepoRoot walks up from the current directory to find go.mod.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod in any parent directory")
		}
		dir = parent
	}
}

// modulePath reads the module path from go.mod, used to title each page
// with its full import path.
func modulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// loadConfig reads docgen.yaml if present and fills in defaults.
func loadConfig(root string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filepath.Join(root, "docgen.yaml"))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse docgen.yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if cfg.Output == "" {
		cfg.Output = "docs/api"
	}
	if len(cfg.Packages) == 0 {
		cfg.Packages = []string{"pkg/retained"}
	}
	return cfg, nil
}

func ensureGomarkdoc() error {
	if _, err := exec.LookPath("gomarkdoc"); err == nil {
		return nil
	}

	fmt.Println("Installing gomarkdoc...")
	cmd := exec.Command("go", "install", "github.com/princjef/gomarkdoc/cmd/gomarkdoc@latest")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func generatePackageDocs(root, modPath, pkg, outDir string) error {
	cmd := exec.Command("gomarkdoc", "./"+pkg)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gomarkdoc failed: %v\n%s", err, stderr.String())
	}

	content := stdout.String()
	if content == "" {
		fmt.Printf("  Warning: no documentation generated for %s\n", pkg)
		return nil
	}

	name := filepath.Base(pkg)
	header := fmt.Sprintf("# %s/%s\n\n", modPath, filepath.ToSlash(pkg))
	content = header + processMarkdown(content)

	return os.WriteFile(filepath.Join(outDir, name+".md"), []byte(content), 0644)
}

// processMarkdown cleans up gomarkdoc output: drops the generated title
// (we add our own with the import path) and unwraps the HTML example
// blocks into plain Markdown.
func processMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, "# ") {
			continue
		}

		// Convert <details><summary>Example</summary> to **Example:**
		if strings.HasPrefix(line, "<details><summary>") && strings.HasSuffix(line, "</summary>") {
			summary := line[len("<details><summary>") : len(line)-len("</summary>")]
			result = append(result, "", fmt.Sprintf("**%s:**", summary), "")
			continue
		}

		if line == "</details>" || line == "<p>" || line == "</p>" {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
