// Package gateways provides implementations of domain gateway interfaces.
package gateways

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ochairo/rsasxlsx/internal/domain/interfaces/gateways"
)

// zipArchiveReader enumerates members of a zip archive
type zipArchiveReader struct{}

// NewZipArchiveReader creates a new zip archive reader
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewZipArchiveReader() *zipArchiveReader {
	return &zipArchiveReader{}
}

var _ gateways.ArchiveReader = (*zipArchiveReader)(nil)

// ForEachMember visits regular members whose name ends in suffix, in central directory order
func (z *zipArchiveReader) ForEachMember(ctx context.Context, archivePath, suffix string, fn func(gateways.ArchiveMember) error) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer zr.Close()

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, suffix) {
			continue
		}

		file := f
		member := gateways.ArchiveMember{
			Name: file.Name,
			Open: func() (io.ReadCloser, error) {
				rc, err := file.Open()
				if err != nil {
					return nil, fmt.Errorf("failed to open member %s: %w", file.Name, err)
				}
				return rc, nil
			},
		}
		if err := fn(member); err != nil {
			return err
		}
	}

	return nil
}
