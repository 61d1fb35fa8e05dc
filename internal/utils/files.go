package utils

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
)

// headerLines bounds how far into a file the generated marker is searched
const headerLines = 5

// CleanPath cleans a path and rejects traversal outside a relative root
func CleanPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	cleanPath := filepath.Clean(path)

	// Allow .. only at the beginning of a relative path
	if strings.Contains(cleanPath, "..") && !strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", path)
	}

	return cleanPath, nil
}

// WriteFile writes content to path, creating parent directories as needed
func WriteFile(path string, content []byte) error {
	cleanPath, err := CleanPath(path)
	if err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return errors.WrapFileSystemError("create directory for", cleanPath, err)
	}

	if err := os.WriteFile(cleanPath, content, 0644); err != nil {
		return errors.WrapFileSystemError("write", cleanPath, err)
	}
	return nil
}

// HasMarker reports whether marker appears in the first lines of the file
func HasMarker(path, marker string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, errors.WrapFileSystemError("open", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for i := 0; i < headerLines && scanner.Scan(); i++ {
		if strings.Contains(scanner.Text(), marker) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, errors.WrapFileSystemError("read", path, err)
	}
	return false, nil
}

// RemoveMarkedFiles deletes every file under dir with the given extension
// whose header carries marker. Files without the marker are left alone. A
// missing directory is not an error.
func RemoveMarkedFiles(dir, ext, marker string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var removed []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(path) != ext {
			return nil
		}

		marked, err := HasMarker(path, marker)
		if err != nil {
			return err
		}
		if !marked {
			return nil
		}

		if err := os.Remove(path); err != nil {
			return errors.WrapFileSystemError("remove", path, err)
		}
		removed = append(removed, path)
		return nil
	})
	if err != nil {
		return removed, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to clean directory '%s'", dir)
	}
	return removed, nil
}
