// Package security guards filesystem and CLI input handling. Configuration
// and manifest files are read through it so a symlinked path can never pull
// content from outside the place the user named.
package security

import (
	"fmt"
	"os"
	"path/filepath"
)

// SymlinkPolicy defines how to handle symlinks
type SymlinkPolicy int

const (
	// RejectSymlinks - reject any symlinks and return an error
	RejectSymlinks SymlinkPolicy = iota
	// ResolveSymlinks - resolve symlinks and use the target path
	ResolveSymlinks
)

// SafeFileInfo contains information about a file after symlink checks
type SafeFileInfo struct {
	OriginalPath string
	ResolvedPath string
	IsSymlink    bool
	FileInfo     os.FileInfo
}

// CheckSymlink validates a file path according to the specified policy
func CheckSymlink(path string, policy SymlinkPolicy) (*SafeFileInfo, error) {
	if policy < RejectSymlinks || policy > ResolveSymlinks {
		return nil, fmt.Errorf("invalid symlink policy: %d", policy)
	}

	// Lstat so the link itself is inspected, not its target
	fileInfo, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %s: %w", path, err)
	}

	result := &SafeFileInfo{
		OriginalPath: path,
		ResolvedPath: path,
		IsSymlink:    fileInfo.Mode()&os.ModeSymlink != 0,
		FileInfo:     fileInfo,
	}

	if !result.IsSymlink {
		return result, nil
	}

	if policy == RejectSymlinks {
		return nil, fmt.Errorf("symlinks are not allowed: %s", path)
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve symlink %s: %w", path, err)
	}
	targetInfo, err := os.Stat(resolvedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access symlink target %s: %w", resolvedPath, err)
	}

	result.ResolvedPath = resolvedPath
	result.FileInfo = targetInfo
	return result, nil
}

// SafeReadFile reads a file after performing symlink checks
func SafeReadFile(path string, policy SymlinkPolicy) ([]byte, error) {
	safeInfo, err := CheckSymlink(path, policy)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(safeInfo.ResolvedPath)
}

// SafeWriteFile writes to a file after performing symlink checks on the file
// and its parent directory
func SafeWriteFile(path string, data []byte, perm os.FileMode, policy SymlinkPolicy) error {
	if _, err := os.Lstat(path); err == nil {
		safeInfo, err := CheckSymlink(path, policy)
		if err != nil {
			return fmt.Errorf("existing file symlink check failed: %w", err)
		}
		path = safeInfo.ResolvedPath
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "/" {
		safeInfo, err := CheckSymlink(dir, policy)
		if err != nil {
			return fmt.Errorf("parent directory symlink check failed: %w", err)
		}
		if safeInfo.ResolvedPath != dir {
			path = filepath.Join(safeInfo.ResolvedPath, filepath.Base(path))
		}
	}

	return os.WriteFile(path, data, perm)
}
