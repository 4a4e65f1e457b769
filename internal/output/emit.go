package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for output targeting.
var (
	// ErrConflictingTargets indicates both a file path and --stdout were given.
	ErrConflictingTargets = errors.New("--output and --stdout are mutually exclusive")
	// ErrWrite indicates the output file could not be written.
	ErrWrite = errors.New("write output")
)

// Target is where formatted content gets emitted: stdout or a file path.
type Target struct {
	Path     string
	ToStdout bool
}

// ResolveTarget decides the emit target from the -o/--stdout flags. When
// neither is given, defaultName selects a file target ("" means stdout).
func ResolveTarget(outPath string, toStdout bool, defaultName string) (Target, error) {
	if outPath != "" && toStdout {
		return Target{}, ErrConflictingTargets
	}
	if outPath != "" {
		return Target{Path: outPath}, nil
	}
	if toStdout || defaultName == "" {
		return Target{ToStdout: true}, nil
	}
	return Target{Path: defaultName}, nil
}

// Emit writes content to the target, creating parent directories for file
// targets as needed.
func (w *Writer) Emit(content string, t Target) error {
	if t.ToStdout {
		if _, err := fmt.Fprint(w.out, content); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		if !strings.HasSuffix(content, "\n") {
			fmt.Fprintln(w.out)
		}
		return nil
	}

	if dir := filepath.Dir(t.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, t.Path, err)
		}
	}
	if err := os.WriteFile(t.Path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, t.Path, err)
	}
	w.Success("Saved → " + t.Path)
	return nil
}

var slugRe = regexp.MustCompile(`[^\w-]+`)

// Slugify lowercases text and collapses anything that is not a word
// character into underscores.
func Slugify(text string) string {
	return strings.ToLower(strings.Trim(slugRe.ReplaceAllString(text, "_"), "_"))
}

// AutoFilename builds the default output filename for a command:
// <part>_<part>..._<YYYY-MM-DD>.<ext>.
func AutoFilename(ext string, parts ...string) string {
	slugs := make([]string, 0, len(parts))
	for _, p := range parts {
		slugs = append(slugs, Slugify(p))
	}
	stamp := time.Now().Format("2006-01-02")
	return strings.Join(slugs, "_") + "_" + stamp + "." + ext
}
