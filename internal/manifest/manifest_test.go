package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/androidfix/internal/fsops"
)

func TestPackageAttr(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "simple manifest",
			text:   `<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.foo.bar">`,
			want:   "com.foo.bar",
			wantOK: true,
		},
		{
			name:   "first match wins",
			text:   `<manifest package="com.first"><!-- package="com.second" --></manifest>`,
			want:   "com.first",
			wantOK: true,
		},
		{
			name:   "commented attribute still matches",
			text:   `<!-- package="com.commented" --><manifest></manifest>`,
			want:   "com.commented",
			wantOK: true,
		},
		{
			name:   "empty value",
			text:   `<manifest package=""></manifest>`,
			wantOK: false,
		},
		{
			name:   "no attribute",
			text:   `<manifest xmlns:android="http://schemas.android.com/apk/res/android"></manifest>`,
			wantOK: false,
		},
		{
			name:   "case sensitive",
			text:   `<manifest PACKAGE="com.upper"></manifest>`,
			wantOK: false,
		},
		{
			name:   "single quotes not matched",
			text:   `<manifest package='com.single'></manifest>`,
			wantOK: false,
		},
		{
			name:   "empty text",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PackageAttr(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("PackageAttr() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("PackageAttr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRead(t *testing.T) {
	fs := fsops.NewRealFS()

	t.Run("missing manifest", func(t *testing.T) {
		text, found, err := Read(fs, t.TempDir())
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if found || text != "" {
			t.Errorf("Read() = (%q, %v), want empty and not found", text, found)
		}
	})

	t.Run("existing manifest", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, RelPath)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		content := `<manifest package="com.foo.bar"/>`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		text, found, err := Read(fs, dir)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if !found {
			t.Fatal("expected manifest to be found")
		}
		if text != content {
			t.Errorf("Read() text = %q, want %q", text, content)
		}
	})
}
