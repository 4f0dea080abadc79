package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AtomicWriteFile writes data to a temporary file and then renames it to the
// target file, so readers never observe a partially written export.
// AtomicWriteFile 将数据写入临时文件，然后重命名为目标文件。
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmpFile, err := os.CreateTemp(dir, "atomic-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name()) // Clean up if something fails

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Chmod(perm); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFile.Name(), filename)
}

// ReadLines reads a file and splits it into lines, dropping only the empty
// fragment a trailing newline produces. Interior blank lines are preserved
// so line numbers stay aligned with the source file.
// ReadLines 读取文件并按行拆分，仅丢弃末尾换行符产生的空片段。
func ReadLines(filePath string) ([]string, error) {
	safePath := filepath.Clean(filePath)
	content, err := os.ReadFile(safePath) // #nosec G304 // filePath is sanitized with filepath.Clean
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}
