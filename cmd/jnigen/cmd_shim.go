package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jnigen/inbound"
)

func newShimCmd() *cobra.Command {
	var pkg string
	var output string

	cmd := &cobra.Command{
		Use:   "shim <file.jni>",
		Short: "Generate cgo shims implementing native methods from a declaration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShim(args[0], pkg, output)
		},
	}

	cmd.Flags().StringVarP(&pkg, "package", "p", "main", "package name of the generated file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <file>_jni.go, - for stdout)")

	return cmd
}

// runShim writes shims for every valid method even when others have
// errors, then fails if any error was reported.
func runShim(path, pkg, output string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read declaration file: %w", err)
	}

	f, diags := inbound.Parse(data, inbound.WithFile(path))
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}

	src, err := inbound.New(pkg).Generate(f)
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.TrimSuffix(path, ".jni") + "_jni.go"
	}
	if output == "-" {
		if _, err := os.Stdout.Write(src); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(output, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		log.Infof("wrote %s", output)
	}

	if inbound.HasErrors(diags) {
		return fmt.Errorf("%s has errors", path)
	}
	return nil
}
