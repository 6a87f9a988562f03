// Package file provides a filesystem-backed driven.ExportSink.
// Exported documents are written as-is into a single directory.
package file
