package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

const appName = "wordswipe"

// TextDictName is the word list looked up inside a data directory
const TextDictName = "words.txt"

// PathResolver locates the dictionary relative to the running binary
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      ConfigDirFor(homeDir),
	}

	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

// ConfigDirFor returns the platform config directory under homeDir
func ConfigDirFor(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		return filepath.Join(homeDir, ".config", appName)
	case "darwin":
		return filepath.Join(homeDir, ".config", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	default:
		return filepath.Join(homeDir, "."+appName)
	}
}

// GetDataPath resolves a dictionary location. The result is either a word list file or a
// directory holding words.txt or dict_*.bin chunks. Candidates, in order:
// 1. User-specified path (if absolute)
// 2. Relative to executable directory
// 3. Relative to current working directory
// 4. data/ next to the executable, its parent, and the config dir
func (pr *PathResolver) GetDataPath(userSpecifiedPath string) (string, error) {
	candidates := pr.dataCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if IsValidDataPath(path) {
			log.Debugf("Found dictionary at %s", path)
			return path, nil
		}
		log.Debugf("Dictionary candidate not valid: %s", path)
	}
	return "", os.ErrNotExist
}

// IsValidDataPath checks if path is a readable word list or a directory with dictionary files
func IsValidDataPath(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !stat.IsDir() {
		return stat.Size() > 0
	}
	if IsFile(filepath.Join(path, TextDictName)) {
		return true
	}
	return len(listBinFiles(path)) > 0
}

func (pr *PathResolver) dataCandidates(userSpecifiedPath string) []string {
	var candidates []string
	if userSpecifiedPath != "" {
		if filepath.IsAbs(userSpecifiedPath) {
			return []string{userSpecifiedPath}
		}
		candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
		if cwd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
		}
	}

	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"), // parent/data
		filepath.Join(pr.configDir, "data"),
	)
}

// DiagnosePathIssues reports how each dictionary candidate was judged. Printed with -d.
func (pr *PathResolver) DiagnosePathIssues(userDataPath string) map[string]any {
	cwd, _ := os.Getwd()
	diag := map[string]any{
		"executable_path": pr.executablePath,
		"current_dir":     cwd,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS + "/" + runtime.GOARCH,
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		diag["env_xdg_config_home"] = v
	}

	candidates := pr.dataCandidates(userDataPath)
	tests := make([]map[string]any, 0, len(candidates))
	for _, candidate := range candidates {
		_, statErr := os.Stat(candidate)
		tests = append(tests, map[string]any{
			"path":     candidate,
			"exists":   statErr == nil,
			"is_valid": IsValidDataPath(candidate),
			"chunks":   listBinFiles(candidate),
		})
	}
	diag["data_candidates"] = tests
	return diag
}

func listBinFiles(path string) []string {
	matches, err := filepath.Glob(filepath.Join(path, "dict_*.bin"))
	if err != nil {
		return nil
	}
	return matches
}
