// Package gradle inspects and patches the android {} block of a subproject's
// Gradle build file.
//
// Both the Groovy (build.gradle) and Kotlin (build.gradle.kts) dialects are
// handled textually. Only the settings androidfix manages are read or
// written: namespace, compileSdk, Java source/target compatibility and the
// Kotlin jvmTarget. Everything else in the file is preserved byte for byte.
package gradle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/danieljhkim/androidfix/internal/fsops"
)

// Build file names, in lookup order.
const (
	KotlinFile = "build.gradle.kts"
	GroovyFile = "build.gradle"
)

var (
	// ErrNoBuildFile indicates the subproject has neither build file.
	ErrNoBuildFile = errors.New("no build file")

	// ErrNoAndroidBlock indicates the build file has no top-level android {} block.
	ErrNoAndroidBlock = errors.New("no android block")
)

var (
	androidBlockRe   = regexp.MustCompile(`(?m)^[ \t]*android\s*\{`)
	compileOptionsRe = regexp.MustCompile(`\bcompileOptions\s*\{`)
	namespaceRe      = regexp.MustCompile(`(?m)^[ \t]*namespace(?:\s*=\s*|\s+)["']([^"']*)["']`)
	compileSdkRe     = regexp.MustCompile(`(?m)^([ \t]*compileSdk(?:Version)?(?:\s*=\s*|[ \t]+))(\S+)`)
	compileSdkCallRe = regexp.MustCompile(`(?m)^([ \t]*compileSdk(?:Version)?\(\s*)(\d+)(\s*\))`)
	sourceCompatRe   = regexp.MustCompile(`(?m)^([ \t]*sourceCompatibility(?:\s*=\s*|[ \t]+))(\S+)`)
	targetCompatRe   = regexp.MustCompile(`(?m)^([ \t]*targetCompatibility(?:\s*=\s*|[ \t]+))(\S+)`)
	jvmTargetRe      = regexp.MustCompile(`(?m)^([ \t]*jvmTarget(?:\s*=\s*|[ \t]+))(\S+)`)
	kotlinPluginRe   = regexp.MustCompile(`kotlin-android|org\.jetbrains\.kotlin\.android|kotlin\("android"\)`)
	indentRe         = regexp.MustCompile(`(?m)^([ \t]+)\S`)
)

// BuildInfo is what a build file currently declares.
type BuildInfo struct {
	// HasAndroidBlock reports whether a top-level android {} block exists
	HasAndroidBlock bool `json:"hasAndroidBlock"`

	// Namespace is the declared namespace, empty if none
	Namespace string `json:"namespace,omitempty"`

	// CompileSdk is the literal compile SDK level, 0 if absent or not a literal
	CompileSdk int `json:"compileSdk,omitempty"`

	// SourceCompatibility and TargetCompatibility are normalized ("11", "1.8")
	SourceCompatibility string `json:"sourceCompatibility,omitempty"`
	TargetCompatibility string `json:"targetCompatibility,omitempty"`

	// JvmTarget is the Kotlin jvmTarget, normalized like the Java versions
	JvmTarget string `json:"jvmTarget,omitempty"`

	// Kotlin reports whether the Kotlin Android plugin is applied
	Kotlin bool `json:"kotlin"`
}

// Edits describes the changes to make. Zero fields are left untouched.
type Edits struct {
	Namespace   string `json:"namespace,omitempty"`
	CompileSdk  int    `json:"compileSdk,omitempty"`
	JavaVersion string `json:"javaVersion,omitempty"`
	JvmTarget   string `json:"jvmTarget,omitempty"`
}

// Empty reports whether e changes nothing.
func (e Edits) Empty() bool {
	return e == Edits{}
}

// Locate returns the build file of the subproject at dir. The Kotlin DSL
// file takes precedence when both exist.
func Locate(fs fsops.FS, dir string) (path string, kts bool, err error) {
	for _, name := range []string{KotlinFile, GroovyFile} {
		p := filepath.Join(dir, name)
		exists, err := fs.Exists(p)
		if err != nil {
			return "", false, fmt.Errorf("failed to check %s: %w", p, err)
		}
		if exists {
			return p, name == KotlinFile, nil
		}
	}
	return "", false, fmt.Errorf("%w in %s", ErrNoBuildFile, dir)
}

// Inspect reads the managed settings out of build file text.
func Inspect(text string) BuildInfo {
	info := BuildInfo{
		Kotlin: kotlinPluginRe.MatchString(text),
	}
	if m := jvmTargetRe.FindStringSubmatch(text); m != nil {
		info.JvmTarget = normalizeVersion(m[2])
	}

	open, end, ok := androidBlock(text)
	if !ok {
		return info
	}
	info.HasAndroidBlock = true
	body := text[open+1 : end]

	if m := namespaceRe.FindStringSubmatch(body); m != nil {
		info.Namespace = m[1]
	}
	info.CompileSdk = compileSdk(body)
	if m := sourceCompatRe.FindStringSubmatch(body); m != nil {
		info.SourceCompatibility = normalizeVersion(m[2])
	}
	if m := targetCompatRe.FindStringSubmatch(body); m != nil {
		info.TargetCompatibility = normalizeVersion(m[2])
	}
	return info
}

// Diff returns the subset of want that info does not already satisfy.
// A declared namespace is never replaced, and jvmTarget is only managed
// for Kotlin subprojects.
func Diff(info BuildInfo, want Edits) Edits {
	var e Edits
	if info.Namespace == "" {
		e.Namespace = want.Namespace
	}
	if want.CompileSdk != 0 && info.CompileSdk != want.CompileSdk {
		e.CompileSdk = want.CompileSdk
	}
	if want.JavaVersion != "" {
		v := normalizeVersion(want.JavaVersion)
		if info.SourceCompatibility != v || info.TargetCompatibility != v {
			e.JavaVersion = v
		}
	}
	if want.JvmTarget != "" && info.Kotlin && info.JvmTarget != normalizeVersion(want.JvmTarget) {
		e.JvmTarget = normalizeVersion(want.JvmTarget)
	}
	return e
}

// Patch applies e to build file text. kts selects Kotlin DSL syntax for
// inserted lines. Existing assignments are rewritten in place; missing ones
// are inserted at the top of the android {} block.
func Patch(text string, kts bool, e Edits) (string, error) {
	if e.Empty() {
		return text, nil
	}
	if _, _, ok := androidBlock(text); !ok {
		return "", ErrNoAndroidBlock
	}

	info := Inspect(text)
	var insert []string

	if e.JvmTarget != "" {
		if info.JvmTarget != "" {
			text = jvmTargetRe.ReplaceAllStringFunc(text, func(line string) string {
				m := jvmTargetRe.FindStringSubmatch(line)
				return m[1] + jvmTargetValue(m[2], e.JvmTarget)
			})
		} else if info.Kotlin {
			insert = append(insert, "kotlinOptions {", "    jvmTarget = "+quote(e.JvmTarget), "}")
		}
	}

	open, end, _ := androidBlock(text)
	body := text[open+1 : end]
	indent := detectIndent(body)

	if e.Namespace != "" && info.Namespace == "" {
		if kts {
			insert = append([]string{"namespace = " + quote(e.Namespace)}, insert...)
		} else {
			insert = append([]string{"namespace " + quote(e.Namespace)}, insert...)
		}
	}

	if e.CompileSdk != 0 {
		sdk := strconv.Itoa(e.CompileSdk)
		switch {
		case compileSdkRe.MatchString(body):
			body = replaceValue(compileSdkRe, body, sdk)
		case compileSdkCallRe.MatchString(body):
			body = compileSdkCallRe.ReplaceAllString(body, "${1}"+sdk+"${3}")
		case kts:
			insert = append(insert, "compileSdk = "+sdk)
		default:
			insert = append(insert, "compileSdk "+sdk)
		}
	}

	if e.JavaVersion != "" {
		var lines []string
		body, lines = patchCompatibility(body, javaVersionConst(e.JavaVersion), indent)
		insert = append(insert, lines...)
	}

	if len(insert) > 0 {
		var b strings.Builder
		b.WriteString("\n")
		for _, line := range insert {
			b.WriteString(indent)
			if strings.HasPrefix(line, "    ") {
				b.WriteString(indent)
				line = strings.TrimPrefix(line, "    ")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if strings.TrimSpace(body) == "" {
			body = b.String()
		} else {
			body = strings.TrimSuffix(b.String(), "\n") + body
		}
	}

	return text[:open+1] + body + text[end:], nil
}

// patchCompatibility rewrites source/target compatibility inside body and
// returns any lines that still need inserting into the android block.
func patchCompatibility(body, version, indent string) (string, []string) {
	hasSource := sourceCompatRe.MatchString(body)
	hasTarget := targetCompatRe.MatchString(body)
	if hasSource {
		body = replaceValue(sourceCompatRe, body, version)
	}
	if hasTarget {
		body = replaceValue(targetCompatRe, body, version)
	}
	if hasSource && hasTarget {
		return body, nil
	}

	var missing []string
	if !hasSource {
		missing = append(missing, "sourceCompatibility = "+version)
	}
	if !hasTarget {
		missing = append(missing, "targetCompatibility = "+version)
	}

	loc := compileOptionsRe.FindStringIndex(body)
	if loc == nil {
		lines := []string{"compileOptions {"}
		for _, m := range missing {
			lines = append(lines, "    "+m)
		}
		return body, append(lines, "}")
	}

	inner := indent + indent
	var b strings.Builder
	for _, m := range missing {
		b.WriteString("\n" + inner + m)
	}
	at := loc[1]
	return body[:at] + b.String() + body[at:], nil
}

// androidBlock returns the offsets of the opening and closing braces of the
// top-level android {} block.
func androidBlock(text string) (open, end int, ok bool) {
	loc := androidBlockRe.FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	open = loc[1] - 1
	end = matchBrace(text, open)
	if end < 0 {
		return 0, 0, false
	}
	return open, end, true
}

// matchBrace returns the index of the brace closing the one at open, or -1.
// String literals and comments are skipped.
func matchBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch c := text[i]; c {
		case '"', '\'':
			for i++; i < len(text) && text[i] != c; i++ {
				if text[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 < len(text) && text[i+1] == '/' {
				for i < len(text) && text[i] != '\n' {
					i++
				}
			} else if i+1 < len(text) && text[i+1] == '*' {
				j := strings.Index(text[i+2:], "*/")
				if j < 0 {
					return -1
				}
				i += j + 3
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func replaceValue(re *regexp.Regexp, text, value string) string {
	return re.ReplaceAllString(text, "${1}"+strings.ReplaceAll(value, "$", "$$"))
}

// compileSdk returns the literal SDK level set in body by assignment or by
// call, or 0.
func compileSdk(body string) int {
	m := compileSdkRe.FindStringSubmatch(body)
	if m == nil {
		m = compileSdkCallRe.FindStringSubmatch(body)
	}
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}
	return n
}

// quote renders s as a double-quoted string literal. Groovy and Kotlin both
// interpolate '$' inside double quotes, so it is escaped.
func quote(s string) string {
	return strings.ReplaceAll(strconv.Quote(s), "$", `\$`)
}

// jvmTargetValue renders version in the same form as the existing value
// old. The typed compilerOptions property needs a JvmTarget constant.
func jvmTargetValue(old, version string) string {
	v := strings.ReplaceAll(normalizeVersion(version), ".", "_")
	switch {
	case strings.HasPrefix(old, "JvmTarget."):
		return "JvmTarget.JVM_" + v
	case strings.HasPrefix(old, "JavaVersion.") && strings.HasSuffix(old, ".toString()"):
		return "JavaVersion.VERSION_" + v + ".toString()"
	default:
		return quote(version)
	}
}

func detectIndent(body string) string {
	if m := indentRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return "    "
}

// normalizeVersion maps the spellings Gradle accepts for a Java version
// ("JavaVersion.VERSION_1_8", "'1.8'", "\"11\"", "JvmTarget.JVM_11") to a
// plain version string.
func normalizeVersion(raw string) string {
	v := strings.Trim(raw, `"'`)
	for _, p := range []string{"VERSION_", "JVM_"} {
		i := strings.Index(v, p)
		if i < 0 {
			continue
		}
		rest := v[i+len(p):]
		n := 0
		for n < len(rest) && (rest[n] == '_' || rest[n] >= '0' && rest[n] <= '9') {
			n++
		}
		return strings.ReplaceAll(rest[:n], "_", ".")
	}
	return v
}

func javaVersionConst(version string) string {
	return "JavaVersion.VERSION_" + strings.ReplaceAll(normalizeVersion(version), ".", "_")
}

// ReadInfo locates and inspects the build file of the subproject at dir.
func ReadInfo(fs fsops.FS, dir string) (path string, kts bool, text string, info BuildInfo, err error) {
	path, kts, err = Locate(fs, dir)
	if err != nil {
		return "", false, "", BuildInfo{}, err
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, "", BuildInfo{}, fmt.Errorf("%w in %s", ErrNoBuildFile, dir)
		}
		return "", false, "", BuildInfo{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text = string(data)
	return path, kts, text, Inspect(text), nil
}
