package port

import "io"

// FileStore abstracts the local root the artifacts land in.
type FileStore interface {
	// RootDir returns the local root directory
	RootDir() string

	// DestPath returns the destination path for a remote-relative path
	DestPath(remotePath string) string

	// Size returns the byte size of the destination file for remotePath and
	// whether it exists at all.
	Size(remotePath string) (int64, bool)

	// Write streams r to the destination for remotePath, creating parent
	// directories as needed and overwriting any existing file. It writes
	// straight to the destination, so a failed write can leave a partial
	// file behind. Returns the number of bytes written.
	Write(remotePath string, r io.Reader) (int64, error)
}
