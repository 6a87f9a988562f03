package driven

import "context"

// ExportSink persists an exported document under a file name.
type ExportSink interface {
	// Save writes data under name and returns where it was written.
	Save(ctx context.Context, name string, data []byte) (string, error)
}
