package filestorage

import "mime/multipart"

// BlobReader is the read side consumed by the document pipeline. The
// reference implementation is local-filesystem backed but nothing in the
// pipeline depends on that.
type BlobReader interface {
	// ReadBytes reads the raw bytes stored at the given storage path
	ReadBytes(storagePath string) ([]byte, error)

	// ResolvePath returns the full filesystem path for a stored file, for
	// collaborators that need a real path (external conversion tooling)
	ResolvePath(storagePath string) string
}

// FileStorage defines the full interface for file storage operations
type FileStorage interface {
	BlobReader

	// SaveFile saves an uploaded file and returns its storage path
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error
}
