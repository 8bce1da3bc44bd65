package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
	"github.com/nickc01/rvc-model-fetcher/internal/port"
)

// DefaultChunkSize is the copy buffer size used for streamed writes
const DefaultChunkSize = 8192

// Store manages the local model root
type Store struct {
	rootDir   string
	chunkSize int
}

// Ensure Store implements port.FileStore
var _ port.FileStore = (*Store)(nil)

// New creates a filesystem store rooted at rootDir, creating the root if it
// does not exist. A chunkSize of zero or less selects the default.
func New(rootDir string, chunkSize int) (*Store, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, &domain.FilesystemError{Err: fmt.Errorf("failed to create local root: %w", err)}
	}

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Store{
		rootDir:   rootDir,
		chunkSize: chunkSize,
	}, nil
}

// RootDir returns the local root directory
func (s *Store) RootDir() string {
	return s.rootDir
}

// DestPath returns the destination path for a remote-relative path
func (s *Store) DestPath(remotePath string) string {
	return filepath.Join(s.rootDir, filepath.FromSlash(remotePath))
}

// Size returns the byte size of the destination file and whether it exists
func (s *Store) Size(remotePath string) (int64, bool) {
	info, err := os.Stat(s.DestPath(remotePath))
	if err != nil || info.IsDir() {
		return 0, false
	}
	return info.Size(), true
}

// Write streams reader to the destination for remotePath in fixed-size
// chunks, creating parent directories on demand and overwriting any existing
// file. It writes straight to the destination: on error, whatever was
// already flushed stays on disk and the byte count reflects it.
func (s *Store) Write(remotePath string, reader io.Reader) (int64, error) {
	dest := s.DestPath(remotePath)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, &domain.FilesystemError{Err: fmt.Errorf("failed to create parent dir: %w", err)}
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, &domain.FilesystemError{Err: fmt.Errorf("failed to create destination: %w", err)}
	}

	buf := make([]byte, s.chunkSize)
	written, err := io.CopyBuffer(f, reader, buf)
	if err != nil {
		f.Close()
		return written, fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if err := f.Close(); err != nil {
		return written, &domain.FilesystemError{Err: fmt.Errorf("failed to close destination: %w", err)}
	}

	return written, nil
}
