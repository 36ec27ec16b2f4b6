package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	logger "github.com/devforge/devforge/internal/logging"
)

const (
	// DefaultMinEntropy is the bits-per-character threshold for quoted strings.
	DefaultMinEntropy = 4.0

	maxFileSize  = 5 << 20
	binarySniff  = 8000
	previewLimit = 20
)

// DefaultExcludes are skipped by every directory scan. Patterns are
// doublestar globs matched against both the base name and the path
// relative to the scan root.
var DefaultExcludes = []string{
	".git", ".svn", ".hg", "node_modules", "vendor", "__pycache__",
	"*.pyc", "*.pyo", "*.log", "*.tmp", "*.swp", "*.swo",
	".secrets.devforge", ".secrets.devforge.lock", ".env.secrets",
}

type Finding struct {
	Path    string
	Line    int
	Kind    string
	Preview string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d - %s", f.Path, f.Line, f.Kind)
}

type Scanner struct {
	Excludes   []string
	MinEntropy float64
	Logger     logger.Logger
}

// New returns a Scanner that skips DefaultExcludes plus extra.
func New(extra ...string) *Scanner {
	excludes := make([]string, 0, len(DefaultExcludes)+len(extra))
	excludes = append(excludes, DefaultExcludes...)
	excludes = append(excludes, extra...)
	return &Scanner{Excludes: excludes, MinEntropy: DefaultMinEntropy}
}

// ScanFile scans one file with the default settings.
func ScanFile(path string) ([]Finding, error) {
	return New().ScanFile(path)
}

// ScanDirectory scans root recursively, skipping DefaultExcludes and excludes.
func ScanDirectory(root string, excludes []string) ([]Finding, error) {
	return New(excludes...).ScanDirectory(root)
}

// ScanDirectory walks root and returns findings with paths relative to it.
func (s *Scanner) ScanDirectory(root string) ([]Finding, error) {
	for _, pattern := range s.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var findings []Finding
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if s.excluded(filepath.ToSlash(rel), d.Name()) {
			s.Logger.Debugf("Skipping excluded path %s", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		fileFindings, err := s.ScanFile(path)
		if err != nil {
			return err
		}
		for _, f := range fileFindings {
			f.Path = rel
			findings = append(findings, f)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return findings, nil
}

func (s *Scanner) excluded(rel, base string) bool {
	for _, pattern := range s.Excludes {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ScanFile scans a single file. Binary and oversized files are skipped.
func (s *Scanner) ScanFile(path string) ([]Finding, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		s.Logger.Debugf("Skipping large file %s", path)
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.IndexByte(data[:min(len(data), binarySniff)], 0) >= 0 {
		return nil, nil
	}

	findings := s.scanLines(data)
	for i := range findings {
		findings[i].Path = path
	}
	return findings, nil
}

func (s *Scanner) scanLines(data []byte) []Finding {
	minEntropy := s.MinEntropy
	if minEntropy == 0 {
		minEntropy = DefaultMinEntropy
	}

	var findings []Finding
	lines := bufio.NewScanner(bytes.NewReader(data))
	lines.Buffer(make([]byte, 0, 64*1024), maxFileSize)

	lineNum := 0
	for lines.Scan() {
		lineNum++
		line := lines.Text()

		var covered [][]int
		for _, p := range patterns {
			for _, loc := range p.re.FindAllStringIndex(line, -1) {
				if overlaps(covered, loc) {
					continue
				}
				covered = append(covered, loc)
				findings = append(findings, Finding{
					Line:    lineNum,
					Kind:    p.kind,
					Preview: preview(line[loc[0]:loc[1]]),
				})
			}
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		for _, loc := range quotedCandidate.FindAllStringSubmatchIndex(line, -1) {
			if overlaps(covered, loc[2:4]) {
				continue
			}
			if shannonEntropy(line[loc[2]:loc[3]]) >= minEntropy {
				findings = append(findings, Finding{
					Line:    lineNum,
					Kind:    highEntropyKind,
					Preview: logger.MaskToken,
				})
			}
		}
	}

	return findings
}

func overlaps(spans [][]int, loc []int) bool {
	for _, span := range spans {
		if loc[0] < span[1] && span[0] < loc[1] {
			return true
		}
	}
	return false
}

// preview shows the edges of long matches and nothing of short ones.
func preview(match string) string {
	if len(match) > previewLimit {
		return match[:10] + "..." + match[len(match)-5:]
	}
	return logger.MaskToken
}
