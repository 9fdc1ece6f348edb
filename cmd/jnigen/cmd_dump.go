package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jnigen/outbound"
)

func newDumpCmd() *cobra.Command {
	var configPath string
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <class path>...",
		Short: "Show what generate would bind and why methods are left out",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			classes, err := loadClasses(cfg, args)
			if err != nil {
				return err
			}
			_, report, err := outbound.New(cfg).Generate(classes)
			if err != nil {
				return err
			}

			switch dumpFormat {
			case "line":
				return dumpLines(os.Stdout, report)
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(dumpReport(report)); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				return nil
			}
			return fmt.Errorf("unknown format: %s (expected line or json)", dumpFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (YAML)")
	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (line, json)")

	return cmd
}

func dumpLines(w io.Writer, report *outbound.Report) error {
	for _, c := range report.Classes {
		fmt.Fprintf(w, "%s -> %s\n", c.Class.Name, c.Type)
		for _, m := range c.Methods {
			if m.Emitted() {
				fmt.Fprintf(w, "  + %s%s -> %s (%s)\n", m.Method.Name, m.Method.Descriptor, m.Name, m.Kind)
				continue
			}
			fmt.Fprintf(w, "  - %s%s: %s\n", m.Method.Name, m.Method.Descriptor, m.Reasons)
		}
	}
	for _, s := range report.Skipped {
		fmt.Fprintf(w, "skipped %s: %s\n", s.Class, s.Reason)
	}
	_, err := fmt.Fprintf(w, "%d bound, %d not emitted, %d classes skipped\n", report.Emitted(), report.Rejected(), len(report.Skipped))
	return err
}

type jsonMethod struct {
	Method     string   `json:"method"`
	Descriptor string   `json:"descriptor"`
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Reasons    []string `json:"reasons,omitempty"`
}

type jsonClass struct {
	Class   string       `json:"class"`
	Type    string       `json:"type"`
	Methods []jsonMethod `json:"methods"`
}

type jsonReport struct {
	Classes []jsonClass             `json:"classes"`
	Skipped []outbound.SkippedClass `json:"skipped,omitempty"`
}

func dumpReport(report *outbound.Report) jsonReport {
	out := jsonReport{Classes: []jsonClass{}, Skipped: report.Skipped}
	for _, c := range report.Classes {
		jc := jsonClass{Class: c.Class.Name, Type: c.Type.String(), Methods: []jsonMethod{}}
		for _, m := range c.Methods {
			jm := jsonMethod{
				Method:     m.Method.Name,
				Descriptor: m.Method.Descriptor,
				Name:       m.Name,
				Kind:       m.Kind.String(),
			}
			for _, r := range m.Reasons {
				jm.Reasons = append(jm.Reasons, r.String())
			}
			jc.Methods = append(jc.Methods, jm)
		}
		out.Classes = append(out.Classes, jc)
	}
	return out
}
