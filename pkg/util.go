package pkg

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
)

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir && !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	if !isDir && stat.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

type ZipEntry struct {
	Name    string
	Content []byte
}

// Zip bundles the entries into an in-memory zip archive, preserving their order.
func Zip(entries ...ZipEntry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		// MS-DOS host, so the archive opens cleanly on any platform
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:           e.Name,
			Method:         zip.Deflate,
			CreatorVersion: 20,
		})
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Content); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip writer: %w", err)
	}
	return buf.Bytes(), nil
}
