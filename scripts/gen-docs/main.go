// Command gen-docs writes the autocore man pages and shell completion
// scripts that release archives bundle.
//
// Usage:
//
//	go run ./scripts/gen-docs [--man man/man1] [--completions completions]
//
// An empty directory flag skips that output.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"

	"github.com/AbdelazizMoustafa10m/autocore/internal/cli"
)

func main() {
	manDir := pflag.String("man", "man/man1", "man page output directory")
	compDir := pflag.String("completions", "completions", "completion script output directory")
	pflag.Parse()

	root := cli.NewRootCmd()

	if *manDir != "" {
		if err := genMan(root, *manDir); err != nil {
			fmt.Fprintf(os.Stderr, "gen-docs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Man pages generated in %s/\n", *manDir)
	}
	if *compDir != "" {
		if err := genCompletions(root, *compDir); err != nil {
			fmt.Fprintf(os.Stderr, "gen-docs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Completions generated in %s/\n", *compDir)
	}
}

func genMan(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	header := &doc.GenManHeader{
		Title:   "AUTOCORE",
		Section: "1",
		Source:  "autocore",
		Manual:  "autocore Manual",
	}
	if err := doc.GenManTree(root, header, dir); err != nil {
		return fmt.Errorf("generating man pages: %w", err)
	}
	return nil
}

func genCompletions(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	scripts := map[string]func(io.Writer) error{
		"autocore.bash": func(w io.Writer) error { return root.GenBashCompletionV2(w, true) },
		"_autocore":     root.GenZshCompletion,
		"autocore.fish": func(w io.Writer) error { return root.GenFishCompletion(w, true) },
		"autocore.ps1":  root.GenPowerShellCompletionWithDesc,
	}
	for name, gen := range scripts {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := gen(f); err != nil {
			f.Close()
			return fmt.Errorf("generating %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
