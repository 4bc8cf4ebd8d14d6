// Package manifest reads the package attribute from AndroidManifest.xml.
//
// The manifest is matched textually, not parsed as XML. The first literal
// package="..." with a non-empty value wins, including one inside a comment.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/danieljhkim/androidfix/internal/fsops"
)

// RelPath is the manifest location relative to a subproject directory.
var RelPath = filepath.Join("src", "main", "AndroidManifest.xml")

var packageRe = regexp.MustCompile(`package="([^"]+)"`)

// PackageAttr returns the first non-empty package attribute value in text.
func PackageAttr(text string) (string, bool) {
	m := packageRe.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// Read returns the manifest text of the subproject at dir. A missing
// manifest is not an error; found is false.
func Read(fs fsops.FS, dir string) (text string, found bool, err error) {
	path := filepath.Join(dir, RelPath)
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return string(data), true, nil
}
