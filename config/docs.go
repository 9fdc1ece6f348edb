package config

import (
	"strings"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/mangle"
)

// DocPattern maps classes under Prefix to a documentation URL template.
// The template may use {CLASS} (internal name, a/b/C), {METHOD} and
// {ARGUMENTS} (comma separated Java source type names).
type DocPattern struct {
	Prefix string `yaml:"prefix"`
	URL    string `yaml:"url"`
}

type Docs []DocPattern

type DocLink struct {
	Label string
	URL   string
}

// Lookup returns the link for a method. The longest matching prefix
// wins. Constructors are linked under the simple class name, the way
// javadoc anchors them.
func (d Docs) Lookup(class, method, descriptor string) (DocLink, bool) {
	var best *DocPattern
	for i := range d {
		p := &d[i]
		if !strings.HasPrefix(class, p.Prefix) {
			continue
		}
		if best == nil || len(p.Prefix) > len(best.Prefix) {
			best = p
		}
	}
	if best == nil {
		return DocLink{}, false
	}

	if method == "<init>" {
		method = mangle.SimpleName(class)
		if i := strings.LastIndexByte(method, '$'); i >= 0 {
			method = method[i+1:]
		}
	}

	var args []string
	if params, err := classfile.Parameters(descriptor); err == nil {
		for _, p := range params {
			args = append(args, p.SourceName())
		}
	}

	url := strings.NewReplacer(
		"{CLASS}", class,
		"{METHOD}", method,
		"{ARGUMENTS}", strings.ReplaceAll(strings.Join(args, ", "), " ", "%20"),
	).Replace(best.URL)

	label := classfile.InternalToSourceName(class) + "." + method
	return DocLink{Label: label, URL: url}, true
}
