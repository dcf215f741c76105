package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/tsbridge/errors"
	"github.com/teranos/tsbridge/gen"
)

// CheckCmd verifies that generated output matches the current Go source.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that generated types are up to date",
	Long: `Check that generated TypeScript matches the current Go source code.

Types are regenerated to a temporary location and compared with the
existing output. Intended for CI.

Exit codes:
  0 - Types are up to date
  1 - Types are out of date, or an error occurred`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("Checking generated types...")

	output := viper.GetString("output")
	if output == "" {
		return errors.New("check requires --output or an output entry in tsbridge.yaml")
	}

	g, err := buildGenerator(output)
	if err != nil {
		return err
	}

	if viper.GetBool("multi-file") {
		return checkMultiFile(g, output)
	}

	want := []byte(g.Generate())
	got, err := os.ReadFile(output)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf("%s does not exist - run 'tsbridge generate' first", output)
		}
		return errors.Wrapf(err, "reading %s", output)
	}

	if !bytes.Equal(want, got) {
		return errors.Newf("%s is out of date - run 'tsbridge generate' to update", output)
	}

	fmt.Println("✓ Types are up to date")
	return nil
}

func checkMultiFile(g *gen.Generator, outputDir string) error {
	tempDir, err := os.MkdirTemp("", "tsbridge-check-*")
	if err != nil {
		return errors.Wrap(err, "creating temp directory")
	}
	defer os.RemoveAll(tempDir)

	if _, err := g.WriteMultiFile(tempDir); err != nil {
		return err
	}

	var stale []string
	err = filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}
		want, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got, err := os.ReadFile(filepath.Join(outputDir, rel))
		if err != nil || !bytes.Equal(want, got) {
			stale = append(stale, rel)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "comparing directories")
	}

	if len(stale) > 0 {
		fmt.Println("✗ Types are out of date:")
		for _, file := range stale {
			fmt.Printf("  - %s\n", file)
		}
		return errors.New("types are out of date - run 'tsbridge generate' to update")
	}

	fmt.Println("✓ Types are up to date")
	return nil
}
