// Package namespace decides the Android package namespace for a subproject
// that does not declare one in its build file.
//
// Resolution order:
//  1. the first package="..." attribute in the subproject's manifest
//  2. a fixed override keyed by subproject name
//  3. a derived name: prefix + subproject name with '-' replaced by '_'
//
// Resolution is pure. The same inputs always yield the same namespace.
package namespace

import (
	"strings"

	"github.com/danieljhkim/androidfix/internal/manifest"
)

// DefaultPrefix is prepended to derived namespaces.
const DefaultPrefix = "com.example."

// Source identifies which rule produced a namespace.
type Source string

const (
	SourceManifest Source = "manifest"
	SourceOverride Source = "override"
	SourceDerived  Source = "derived"
)

// Decision is the outcome of resolving one subproject.
type Decision struct {
	// SubprojectName is the Gradle project name
	SubprojectName string `json:"subproject"`

	// ManifestText is the manifest content used, empty if the manifest was absent
	ManifestText string `json:"-"`

	// ResolvedNamespace is never empty
	ResolvedNamespace string `json:"namespace"`

	// Source is the rule that produced ResolvedNamespace
	Source Source `json:"source"`
}

// Resolver holds the fallback policy. The zero value derives every
// namespace with DefaultPrefix and has no overrides.
type Resolver struct {
	prefix    string
	overrides map[string]string
}

// DefaultResolver returns the resolver used when nothing is configured.
func DefaultResolver() *Resolver {
	return NewResolver(DefaultPrefix, map[string]string{
		"ar_flutter_plugin": "com.carius.ar_flutter_plugin",
	})
}

// NewResolver creates a Resolver. An empty prefix falls back to DefaultPrefix.
// Overrides with empty values are ignored.
func NewResolver(prefix string, overrides map[string]string) *Resolver {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	o := make(map[string]string, len(overrides))
	for name, ns := range overrides {
		if ns == "" {
			continue
		}
		o[name] = ns
	}
	return &Resolver{prefix: prefix, overrides: o}
}

// Decide resolves the namespace for subprojectName. An empty manifestText
// is treated as an absent manifest.
func (r *Resolver) Decide(subprojectName, manifestText string) Decision {
	d := Decision{
		SubprojectName: subprojectName,
		ManifestText:   manifestText,
	}

	if pkg, ok := manifest.PackageAttr(manifestText); ok {
		d.ResolvedNamespace = pkg
		d.Source = SourceManifest
		return d
	}

	if ns, ok := r.overrides[subprojectName]; ok {
		d.ResolvedNamespace = ns
		d.Source = SourceOverride
		return d
	}

	prefix := r.prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	d.ResolvedNamespace = prefix + strings.ReplaceAll(subprojectName, "-", "_")
	d.Source = SourceDerived
	return d
}

// Resolve returns only the namespace string of Decide.
func (r *Resolver) Resolve(subprojectName, manifestText string) string {
	return r.Decide(subprojectName, manifestText).ResolvedNamespace
}

var defaultResolver = DefaultResolver()

// Resolve resolves with the default policy.
func Resolve(subprojectName, manifestText string) string {
	return defaultResolver.Resolve(subprojectName, manifestText)
}
