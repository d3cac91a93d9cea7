package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds data directories relative to the running binary.
type PathResolver struct {
	executableDir string
	workDir       string
	configDir     string
}

// NewPathResolver resolves the executable location, following symlinks.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not determine working directory: %v", err)
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		workDir:       wd,
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, configDir)
	return pr, nil
}

// candidates lists the places a data directory may live, most specific first.
func (pr *PathResolver) candidates(requested string) []string {
	var paths []string
	if filepath.IsAbs(requested) {
		return append(paths, requested)
	}
	if pr.workDir != "" {
		paths = append(paths, filepath.Join(pr.workDir, requested))
	}
	paths = append(paths,
		filepath.Join(pr.executableDir, requested),
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
	)
	if pr.configDir != "" {
		paths = append(paths, filepath.Join(pr.configDir, "data"))
	}
	return paths
}

// DataDir returns the first candidate holding dict_*.bin chunks. When none
// does, the first candidate is returned so callers can report it.
func (pr *PathResolver) DataDir(requested string) string {
	paths := pr.candidates(requested)
	for _, path := range paths {
		if IsDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return paths[0]
}

// IsDataDir reports whether path is a directory with at least one chunk.
func IsDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(path, "dict_*.bin"))
	return err == nil && len(matches) > 0
}
