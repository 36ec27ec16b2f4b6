package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	kerrors "github.com/devforge/devforge/internal/errors"
)

const runtimeEnvHeader = "# Generated by devforge secrets inject. Do not commit this file.\n"

// Inject decrypts every secret and writes NAME=value lines to outputPath,
// replacing any existing file. An empty outputPath writes the project's
// runtime env file. Returns the absolute path written.
func (s *Store) Inject(outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = filepath.Join(s.projectPath, s.runtimeEnvFile)
	}
	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", outputPath, err)
	}
	if outputPath == s.path || outputPath == s.lockPath() {
		return "", fmt.Errorf("refusing to overwrite the secret store with plaintext: %s", outputPath)
	}

	sf, err := s.snapshot()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(runtimeEnvHeader)

	if names := sortedNames(sf); len(names) > 0 {
		enclave, err := s.key(sf.ProjectID)
		if err != nil {
			return "", err
		}
		if err := checkEnclave(sf, enclave); err != nil {
			return "", err
		}

		for _, name := range names {
			value, err := openEntry(enclave, name, sf.Entries[name])
			if err != nil {
				return "", err
			}
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(value)
			b.WriteByte('\n')
		}
	}

	// atomic.WriteFile gives the new file the mode of the one it replaces,
	// so a stale 0644 file is restricted before plaintext reaches it.
	if err := restrictExisting(outputPath); err != nil {
		return "", err
	}
	if err := atomic.WriteFile(outputPath, strings.NewReader(b.String())); err != nil {
		return "", fmt.Errorf("%w: failed to write %s: %w", kerrors.ErrStoreIO, outputPath, err)
	}

	s.log.Infof("Injected %d secret(s) into %s", len(sf.Entries), outputPath)
	return outputPath, nil
}

func restrictExisting(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to stat %s: %w", kerrors.ErrStoreIO, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", kerrors.ErrStoreIO, path)
	}
	if info.Mode().Perm() == 0600 {
		return nil
	}
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("%w: failed to restrict %s: %w", kerrors.ErrStoreIO, path, err)
	}
	return nil
}
