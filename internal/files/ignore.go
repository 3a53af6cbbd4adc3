package files

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/vulnticket/vulnticket/internal/audit"
	"github.com/vulnticket/vulnticket/internal/cache"
)

// AppendIgnore ensures pattern is listed in dir/.gitignore, creating the file
// when missing. Calling it twice is a no-op.
func AppendIgnore(dir, pattern string) error {
	path := filepath.Join(dir, ".gitignore")
	existing := map[string]bool{}
	needsNewline := false
	if b, err := os.ReadFile(path); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		needsNewline = len(b) > 0 && b[len(b)-1] != '\n'
	}
	if existing[pattern] {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if needsNewline {
		pattern = "\n" + pattern
	}
	_, err = f.WriteString(pattern + "\n")
	return err
}

// GeneratedFiles are the bookkeeping files an export leaves in the output directory.
func GeneratedFiles() []string {
	return []string{audit.LogName, cache.FileName}
}
