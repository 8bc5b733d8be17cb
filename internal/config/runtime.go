package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	path := os.Getenv("MOTIVATE_RUNTIME_PATH")
	if path == "" {
		path = ".motivate"
	}
	return resolveRuntimePath(path)
}

func resolveRuntimePath(path string) string {
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
