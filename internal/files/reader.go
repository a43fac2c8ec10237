// Package files reads local source files and directories for the CLI.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ErrBinaryFile is returned for files that contain NUL bytes in their first block.
var ErrBinaryFile = errors.New("file appears to be binary")

const (
	sniffSize        = 1024
	truncationMarker = "\n\n[... content truncated (file too large) ...]\n\n"
)

// ReadFileContent reads a text file. Files larger than maxSize keep their first and
// last maxSize/2 bytes around a truncation marker. maxSize <= 0 disables the cap.
func ReadFileContent(absFilepath string, maxSize int64) (string, error) {
	fileInfo, err := os.Stat(absFilepath)
	if err != nil {
		return "", fmt.Errorf("file not found or stat error: %w", err)
	}
	if fileInfo.IsDir() {
		return "", fmt.Errorf("path '%s' is a directory, not a file", absFilepath)
	}

	content, err := os.ReadFile(absFilepath)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}

	head := content
	if len(head) > sniffSize {
		head = head[:sniffSize]
	}
	for _, b := range head {
		if b == 0 {
			return "", fmt.Errorf("%s: %w", filepath.Base(absFilepath), ErrBinaryFile)
		}
	}

	size := int64(len(content))
	if maxSize > 0 && size > maxSize {
		logrus.Warnf("File '%s' (%d bytes) is too large. Reading partially.", filepath.Base(absFilepath), size)
		half := maxSize / 2
		return string(content[:half]) + truncationMarker + string(content[size-half:]), nil
	}

	logrus.Debugf("Read complete file '%s' (%d bytes).", filepath.Base(absFilepath), size)
	return string(content), nil
}
