// Package config loads the jnigen YAML configuration and answers the
// policy questions the generators ask: which methods to skip, what to
// call them, where wrapper packages live and where their docs are.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jnigen/mangle"
	"github.com/dhamidi/jnigen/typemap"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// StaticEnvStyle selects how constructors and static wrappers obtain
// their *jnirt.Env.
type StaticEnvStyle string

const (
	StaticEnvExplicit StaticEnvStyle = "explicit"
	// StaticEnvImplicit is recognized but not implemented. Methods that
	// would need it are rejected during generation.
	StaticEnvImplicit StaticEnvStyle = "implicit"
)

const DefaultPackageRoot = "jnibindings"

type Config struct {
	PackageRoot string            `yaml:"package_root"`
	Include     []string          `yaml:"include"`
	Codegen     Codegen           `yaml:"codegen"`
	Ignore      []Rule            `yaml:"ignore"`
	Rename      []Rule            `yaml:"rename"`
	Types       map[string]string `yaml:"types"`
	Docs        Docs              `yaml:"docs"`

	ignored *Tiers[struct{}]
	renamed *Tiers[string]
}

type Codegen struct {
	MethodNamingStyle mangle.Style   `yaml:"method_naming_style"`
	StaticEnv         StaticEnvStyle `yaml:"static_env"`
}

// Rule selects a class, a method of a class, or one overload of a method.
// To is only used by rename rules.
type Rule struct {
	Class     string `yaml:"class"`
	Method    string `yaml:"method,omitempty"`
	Signature string `yaml:"signature,omitempty"`
	To        string `yaml:"to,omitempty"`
}

func (r Rule) String() string {
	s := r.Class
	if r.Method != "" {
		s += "." + r.Method + r.Signature
	}
	return s
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.init(); err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates data against the schema, decodes it and applies
// defaults. Any problem is reported as an error wrapping
// ErrInvalidConfig.
func Parse(data []byte) (*Config, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing configuration: %w", ErrInvalidConfig, err)
	}
	if err := cfg.init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c *Config) init() error {
	if c.PackageRoot == "" {
		c.PackageRoot = DefaultPackageRoot
	}
	if c.Codegen.MethodNamingStyle == "" {
		c.Codegen.MethodNamingStyle = mangle.DefaultStyle
	}
	if _, err := mangle.ParseStyle(string(c.Codegen.MethodNamingStyle)); err != nil {
		return err
	}
	switch c.Codegen.StaticEnv {
	case "":
		c.Codegen.StaticEnv = StaticEnvExplicit
	case StaticEnvExplicit, StaticEnvImplicit:
	default:
		return fmt.Errorf("unknown static_env style %q", c.Codegen.StaticEnv)
	}

	c.ignored = NewTiers[struct{}]()
	for _, rule := range c.Ignore {
		if rule.To != "" {
			return fmt.Errorf("ignore rule %s has a rename target", rule)
		}
		if err := c.ignored.Add(rule, struct{}{}); err != nil {
			return fmt.Errorf("ignore rule %s: %w", rule, err)
		}
	}

	c.renamed = NewTiers[string]()
	for _, rule := range c.Rename {
		if !mangle.IsIdentifier(rule.To) {
			return fmt.Errorf("rename rule %s: %q is not a Go identifier", rule, rule.To)
		}
		if _, exists := c.renamed.Exact(rule); exists {
			return fmt.Errorf("rename rule %s is declared twice", rule)
		}
		if err := c.renamed.Add(rule, rule.To); err != nil {
			return fmt.Errorf("rename rule %s: %w", rule, err)
		}
	}

	for class, target := range c.Types {
		if _, err := typemap.ParseTypeRef(target); err != nil {
			return fmt.Errorf("types entry %s: %w", class, err)
		}
	}
	return nil
}

// Ignored reports whether a method is excluded from generation by class,
// by class and name, or by class, name and descriptor.
func (c *Config) Ignored(class, method, descriptor string) bool {
	_, ok := c.ignored.Lookup(class, method, descriptor)
	return ok
}

// Renamed returns the configured Go name for a method. The most specific
// matching rule wins.
func (c *Config) Renamed(class, method, descriptor string) (string, bool) {
	return c.renamed.Lookup(class, method, descriptor)
}

// Includes reports whether class passes the include filter. An empty
// filter includes everything.
func (c *Config) Includes(class string) bool {
	if len(c.Include) == 0 {
		return true
	}
	for _, prefix := range c.Include {
		if strings.HasPrefix(class, prefix) {
			return true
		}
	}
	return false
}

// Resolver returns the type resolver for wrapper packages under
// PackageRoot, honoring type overrides.
func (c *Config) Resolver() *typemap.PackageResolver {
	return &typemap.PackageResolver{Root: c.PackageRoot, Overrides: c.Types}
}
