package port

import (
	"context"
	"io"
)

// RemoteSource fetches raw artifact bytes from the remote host.
type RemoteSource interface {
	// Fetch issues a streamed GET for the artifact at remotePath and returns
	// the response body plus the declared content length, -1 when the server
	// does not declare one. The caller must close the body.
	Fetch(ctx context.Context, remotePath string) (io.ReadCloser, int64, error)
}
