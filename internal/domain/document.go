package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Document is a file attached to a client, tracked by a metadata row and a blob
type Document struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	DocumentName string    `json:"document_name"`
	DocumentPath string    `json:"document_path"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// UploadFile is one file of an attach batch
type UploadFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// DocumentBlob is an open document stream ready to be served
type DocumentBlob struct {
	Document    *Document
	Body        io.ReadCloser
	Size        int64
	ContentType string
	Filename    string
}
