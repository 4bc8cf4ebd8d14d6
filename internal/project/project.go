// Package project discovers the Android subprojects of a Flutter app.
//
// Flutter writes .flutter-plugins-dependencies at the app root on every
// `flutter pub get`. Each Android plugin listed there becomes a Gradle
// subproject whose sources live in <plugin path>/android and whose build
// output is redirected to <root>/build/<name>.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/androidfix/internal/fsops"
)

const (
	// PubspecFile marks the root of a Flutter project.
	PubspecFile = "pubspec.yaml"

	// PluginsFile lists the resolved plugins of a Flutter project.
	PluginsFile = ".flutter-plugins-dependencies"
)

// ErrNoPubspec indicates no pubspec.yaml was found at or above the start directory.
var ErrNoPubspec = errors.New("pubspec.yaml not found")

// Subproject is one Android Gradle subproject of the app.
type Subproject struct {
	// Name is the Gradle project name (the plugin name)
	Name string `json:"name"`

	// Dir is the subproject directory containing build.gradle(.kts)
	Dir string `json:"dir"`

	// BuildDir is the redirected build output directory
	BuildDir string `json:"buildDir"`
}

// Project is a discovered Flutter app.
type Project struct {
	// Root is the directory containing pubspec.yaml
	Root string `json:"root"`

	// Name is the app name from pubspec.yaml
	Name string `json:"name"`

	// Subprojects is sorted by name
	Subprojects []Subproject `json:"subprojects"`
}

// BuildRoot is the redirected root build directory of a project at root.
func BuildRoot(root string) string {
	return filepath.Join(root, "build")
}

type pluginsFile struct {
	Plugins struct {
		Android []pluginEntry `json:"android"`
	} `json:"plugins"`
}

type pluginEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	NativeBuild *bool  `json:"native_build"`
}

type pubspec struct {
	Name string `yaml:"name"`
}

// FindRoot walks upward from start to the nearest directory containing
// pubspec.yaml.
func FindRoot(fs fsops.FS, start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	for {
		exists, err := fs.Exists(filepath.Join(dir, PubspecFile))
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", dir, err)
		}
		if exists {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent", ErrNoPubspec, start)
		}
		dir = parent
	}
}

// Discover loads the project at root. extra lists additional subproject
// directories, relative to root unless absolute. An extra subproject is
// named after its directory, or after the parent directory when the
// directory itself is called "android". A project that has not run `flutter pub get` yet
// has no plugins file and yields only the extra subprojects.
func Discover(fs fsops.FS, root string, extra []string) (*Project, error) {
	p := &Project{Root: root, Subprojects: []Subproject{}}

	data, err := fs.ReadFile(filepath.Join(root, PubspecFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", PubspecFile, err)
	}
	var spec pubspec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", PubspecFile, err)
	}
	p.Name = spec.Name

	seen := make(map[string]bool)
	add := func(name, dir string) error {
		if err := fs.ValidateIdentifier(name); err != nil {
			return fmt.Errorf("invalid subproject %q: %w", name, err)
		}
		if seen[name] {
			return nil
		}
		seen[name] = true
		p.Subprojects = append(p.Subprojects, Subproject{
			Name:     name,
			Dir:      dir,
			BuildDir: filepath.Join(BuildRoot(root), name),
		})
		return nil
	}

	data, err = fs.ReadFile(filepath.Join(root, PluginsFile))
	switch {
	case err == nil:
		var pf pluginsFile
		if err := json.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", PluginsFile, err)
		}
		for _, entry := range pf.Plugins.Android {
			if entry.NativeBuild != nil && !*entry.NativeBuild {
				continue
			}
			if err := add(entry.Name, filepath.Join(entry.Path, "android")); err != nil {
				return nil, err
			}
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", PluginsFile, err)
	}

	for _, dir := range extra {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		dir = filepath.Clean(dir)
		name := filepath.Base(dir)
		if name == "android" {
			name = filepath.Base(filepath.Dir(dir))
		}
		if err := add(name, dir); err != nil {
			return nil, err
		}
	}

	sort.Slice(p.Subprojects, func(i, j int) bool {
		return p.Subprojects[i].Name < p.Subprojects[j].Name
	})
	return p, nil
}
