package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/androidfix/internal/config"
	"github.com/danieljhkim/androidfix/internal/gradle"
	"github.com/danieljhkim/androidfix/internal/namespace"
)

func TestScan(t *testing.T) {
	p := setupProject(t)
	eng := newTestEngine(nil)

	result, err := eng.Scan(context.Background(), &ScanRequest{CWD: filepath.Join(p.root, "packages")})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if result.Root != p.root || result.Project != "demo_app" {
		t.Errorf("Root = %s Project = %s", result.Root, result.Project)
	}
	if !result.GeneratedAt.Equal(fixedTime) {
		t.Errorf("GeneratedAt = %v, want %v", result.GeneratedAt, fixedTime)
	}
	if result.ConfigPath != filepath.Join(p.root, "androidfix.yaml") {
		t.Errorf("ConfigPath = %s", result.ConfigPath)
	}
	wantSettings := gradle.Edits{CompileSdk: 36, JavaVersion: "11", JvmTarget: "11"}
	if diff := cmp.Diff(wantSettings, result.Settings); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}

	type row struct {
		Name      string
		Status    string
		Namespace string
		Source    namespace.Source
		Manifest  bool
	}
	var got []row
	for _, e := range result.Entries {
		got = append(got, row{e.Name, e.Status, e.Decision.ResolvedNamespace, e.Decision.Source, e.ManifestFound})
	}
	want := []row{
		{"ar_flutter_plugin", StatusNeedsNamespace, "com.carius.ar_flutter_plugin", namespace.SourceOverride, false},
		{"broken", StatusError, "com.example.broken", namespace.SourceDerived, false},
		{"camera", StatusNeedsNamespace, "io.flutter.plugins.camera", namespace.SourceManifest, true},
		{"my-plugin", StatusDeclared, "com.example.my_plugin", namespace.SourceDerived, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if !result.Entries[0].KTS || result.Entries[0].BuildFile != p.buildFile("ar_flutter_plugin") {
		t.Errorf("ar_flutter_plugin build file = %s kts = %v", result.Entries[0].BuildFile, result.Entries[0].KTS)
	}
	if !errors.Is(result.Entries[1].err, gradle.ErrNoBuildFile) || result.Entries[1].Error == "" {
		t.Errorf("broken entry error = %v", result.Entries[1].err)
	}
	if !result.Entries[2].NeedsNamespace() || result.Entries[3].NeedsNamespace() {
		t.Error("NeedsNamespace mismatch")
	}
	if result.Entries[2].BuildDir != filepath.Join(p.root, "build", "camera") {
		t.Errorf("camera BuildDir = %s", result.Entries[2].BuildDir)
	}
}

func TestScan_SingleWorker(t *testing.T) {
	p := setupProject(t)
	writeFile(t, filepath.Join(p.root, "androidfix.yaml"), "workers: 1\nextraSubprojects:\n  - packages/my-plugin/android\n")

	result, err := newTestEngine(nil).Scan(context.Background(), &ScanRequest{CWD: p.root})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Entries) != 4 {
		t.Errorf("expected 4 entries, got %d", len(result.Entries))
	}
}

func TestScan_NotFlutterProject(t *testing.T) {
	_, err := newTestEngine(nil).Scan(context.Background(), &ScanRequest{CWD: t.TempDir()})
	if !errors.Is(err, ErrNotFlutterProject) {
		t.Errorf("Scan() error = %v, want ErrNotFlutterProject", err)
	}
}

func TestScan_InvalidConfig(t *testing.T) {
	p := setupProject(t)
	writeFile(t, filepath.Join(p.root, "androidfix.yaml"), "workers: 0\n")

	_, err := newTestEngine(nil).Scan(context.Background(), &ScanRequest{CWD: p.root})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Scan() error = %v, want ErrValidation", err)
	}
}

func TestScan_ExplicitConfigMissing(t *testing.T) {
	p := setupProject(t)
	_, err := newTestEngine(nil).Scan(context.Background(), &ScanRequest{
		CWD:        p.root,
		ConfigPath: filepath.Join(p.root, "missing.yaml"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Scan() error = %v, want ErrValidation", err)
	}
}

func TestScan_EnvConfigMissing(t *testing.T) {
	p := setupProject(t)
	t.Setenv(config.EnvConfig, filepath.Join(p.root, "missing.yaml"))

	_, err := newTestEngine(nil).Scan(context.Background(), &ScanRequest{CWD: p.root})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Scan() error = %v, want ErrValidation", err)
	}
}

func TestScan_EnvConfig(t *testing.T) {
	p := setupProject(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "workers: 2\n")
	t.Setenv(config.EnvConfig, path)

	result, err := newTestEngine(nil).Scan(context.Background(), &ScanRequest{CWD: p.root})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.ConfigPath != path {
		t.Errorf("ConfigPath = %q, want %q", result.ConfigPath, path)
	}
}

func TestScan_Canceled(t *testing.T) {
	p := setupProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(nil).Scan(ctx, &ScanRequest{CWD: p.root})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}
