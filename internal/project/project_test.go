package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/androidfix/internal/fsops"
)

const pluginsJSON = `{
  "info": "This is a generated file; do not edit or check into version control.",
  "plugins": {
    "ios": [{"name": "camera_avfoundation", "path": "/pub/camera_avfoundation/"}],
    "android": [
      {"name": "url_launcher_android", "path": "/pub/url_launcher_android-6.3.0/", "native_build": true, "dependencies": []},
      {"name": "ar_flutter_plugin", "path": "/pub/ar_flutter_plugin-0.7.3/", "dependencies": []},
      {"name": "dart_only", "path": "/pub/dart_only/", "native_build": false, "dependencies": []}
    ]
  }
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindRoot(t *testing.T) {
	fs := fsops.NewRealFS()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, PubspecFile), "name: demo\n")
	nested := filepath.Join(root, "android", "app")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(fs, nested)
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindRoot() = %s, want %s", got, want)
	}
}

func TestFindRoot_NotFlutter(t *testing.T) {
	_, err := FindRoot(fsops.NewRealFS(), t.TempDir())
	if !errors.Is(err, ErrNoPubspec) {
		t.Errorf("FindRoot() error = %v, want ErrNoPubspec", err)
	}
}

func TestDiscover(t *testing.T) {
	fs := fsops.NewRealFS()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, PubspecFile), "name: demo_app\nversion: 1.0.0\n")
	writeFile(t, filepath.Join(root, PluginsFile), pluginsJSON)

	p, err := Discover(fs, root, []string{"packages/local-plugin/android"})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := &Project{
		Root: root,
		Name: "demo_app",
		Subprojects: []Subproject{
			{
				Name:     "ar_flutter_plugin",
				Dir:      filepath.Join("/pub/ar_flutter_plugin-0.7.3", "android"),
				BuildDir: filepath.Join(root, "build", "ar_flutter_plugin"),
			},
			{
				Name:     "local-plugin",
				Dir:      filepath.Join(root, "packages", "local-plugin", "android"),
				BuildDir: filepath.Join(root, "build", "local-plugin"),
			},
			{
				Name:     "url_launcher_android",
				Dir:      filepath.Join("/pub/url_launcher_android-6.3.0", "android"),
				BuildDir: filepath.Join(root, "build", "url_launcher_android"),
			},
		},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_NoPluginsFile(t *testing.T) {
	fs := fsops.NewRealFS()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, PubspecFile), "name: fresh\n")

	p, err := Discover(fs, root, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(p.Subprojects) != 0 {
		t.Errorf("expected no subprojects, got %d", len(p.Subprojects))
	}
}

func TestDiscover_InvalidName(t *testing.T) {
	fs := fsops.NewRealFS()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, PubspecFile), "name: demo\n")
	writeFile(t, filepath.Join(root, PluginsFile), `{"plugins":{"android":[{"name":"../escape","path":"/x"}]}}`)

	if _, err := Discover(fs, root, nil); err == nil {
		t.Error("expected error for invalid subproject name")
	}
}

func TestDiscover_BadJSON(t *testing.T) {
	fs := fsops.NewRealFS()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, PubspecFile), "name: demo\n")
	writeFile(t, filepath.Join(root, PluginsFile), `{not json`)

	if _, err := Discover(fs, root, nil); err == nil {
		t.Error("expected error for malformed plugins file")
	}
}
