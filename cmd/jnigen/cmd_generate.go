package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jnigen/config"
	"github.com/dhamidi/jnigen/java"
	"github.com/dhamidi/jnigen/outbound"
)

func newGenerateCmd() *cobra.Command {
	var configPath string
	var output string

	cmd := &cobra.Command{
		Use:   "generate <class path>...",
		Short: "Generate Go wrappers for classes in .class files, jars or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(configPath, output, args)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (YAML)")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadClasses loads every class under paths. Unreadable entries are
// logged; a path that yields nothing at all is an error.
func loadClasses(cfg *config.Config, paths []string) ([]*java.Class, error) {
	var classes []*java.Class
	for _, path := range paths {
		cs, err := java.LoadPath(path, cfg.Codegen.MethodNamingStyle)
		if err != nil {
			if len(cs) == 0 {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
			log.Warningf("loading %s: %v", path, err)
		}
		log.Infof("loaded %d classes from %s", len(cs), path)
		classes = append(classes, cs...)
	}
	return classes, nil
}

func runGenerate(configPath, output string, paths []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	classes, err := loadClasses(cfg, paths)
	if err != nil {
		return err
	}

	files, report, err := outbound.New(cfg).Generate(classes)
	if err != nil {
		return err
	}

	for _, f := range files {
		dest := filepath.Join(output, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", dest, err)
		}
		if err := os.WriteFile(dest, f.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		log.Infof("wrote %s", dest)
	}
	for _, s := range report.Skipped {
		log.Infof("skipped %s: %s", s.Class, s.Reason)
	}

	fmt.Printf("Generated %d files: %d methods bound, %d not emitted, %d classes skipped\n",
		len(files), report.Emitted(), report.Rejected(), len(report.Skipped))
	return nil
}
