// =============================================================================
// Master Data Converter - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the converter:
//   - Input format detection by extension
//   - Atomic output writes (temp file in the target directory + rename)
//   - Small stat helpers used for logging
//
// ATOMIC WRITES:
//   The JSON document is written to a temporary file next to the target and
//   renamed over it only after a successful flush and sync. A failed run
//   therefore never leaves a truncated output file behind, and an existing
//   output from a previous run stays intact.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// INPUT FORMAT DETECTION
// =============================================================================

// InputFormat identifies how an input table is stored.
type InputFormat string

const (
	// FormatCSV is delimited text. It is also the fallback for unknown extensions.
	FormatCSV InputFormat = "csv"

	// FormatXLSX is an Excel workbook.
	FormatXLSX InputFormat = "xlsx"
)

// DetectInputFormat picks the input format from the file extension.
func DetectInputFormat(path string) InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// =============================================================================
// FILE WRITING
// =============================================================================

// WriteFileAtomic writes data to path through a temporary file and a rename.
//
// PARAMETERS:
//   - path: The destination file. Its directory is created if missing.
//   - data: The complete file content.
//   - perm: The permission of the destination file.
//
// RETURNS:
//   - An error if any step fails. The destination is untouched in that case.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a regular file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
