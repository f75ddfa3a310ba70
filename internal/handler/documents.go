package handler

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/middleware"
)

// UploadField is the multipart form field carrying client documents
const UploadField = "documents"

// DocumentService is the document operations used by DocumentsHandler
type DocumentService interface {
	Attach(ctx context.Context, clientID uuid.UUID, files []domain.UploadFile) ([]*domain.Document, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Document, error)
	FetchBlob(ctx context.Context, id uuid.UUID) (*domain.DocumentBlob, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Document, error)
}

// DocumentsHandler handles document endpoints
type DocumentsHandler struct {
	documentService DocumentService
	logger          *zap.Logger
}

// NewDocumentsHandler creates a new documents handler
func NewDocumentsHandler(documentService DocumentService, logger *zap.Logger) *DocumentsHandler {
	return &DocumentsHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// UploadResponse is returned by a successful upload
type UploadResponse struct {
	Message   string             `json:"message"`
	Documents []*domain.Document `json:"documents"`
}

// UploadDocuments handles POST /clients/:id/documents
func (h *DocumentsHandler) UploadDocuments(c *fiber.Ctx) error {
	clientID, err := parseID(c, "id", "client")
	if err != nil {
		return respondError(c, h.logger, "Failed to upload documents", err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Expected a multipart form")
	}

	headers := form.File[UploadField]
	files := make([]domain.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFile(fh))
	}

	docs, err := h.documentService.Attach(c.Context(), clientID, files)
	if err != nil {
		return respondError(c, h.logger, "Failed to upload documents", err)
	}

	middleware.RecordDocumentsUploaded(len(docs))

	return c.JSON(UploadResponse{
		Message:   "Documents uploaded successfully",
		Documents: docs,
	})
}

func uploadFile(fh *multipart.FileHeader) domain.UploadFile {
	return domain.UploadFile{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// ListDocuments handles GET /clients/:id/documents
func (h *DocumentsHandler) ListDocuments(c *fiber.Ctx) error {
	clientID, err := parseID(c, "id", "client")
	if err != nil {
		return respondError(c, h.logger, "Failed to list documents", err)
	}

	docs, err := h.documentService.ListByClient(c.Context(), clientID)
	if err != nil {
		return respondError(c, h.logger, "Failed to list documents", err)
	}
	if docs == nil {
		docs = []*domain.Document{}
	}

	return c.JSON(docs)
}

// GetDocument handles GET /documents/:id by streaming the stored file
func (h *DocumentsHandler) GetDocument(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "document")
	if err != nil {
		return respondError(c, h.logger, "Failed to fetch document", err)
	}

	blob, err := h.documentService.FetchBlob(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to fetch document", err)
	}

	c.Set(fiber.HeaderContentType, blob.ContentType)
	c.Set(fiber.HeaderContentDisposition, inlineDisposition(blob.Filename))

	// fasthttp closes the body once the response has been written and sets Content-Length from the size
	return c.SendStream(blob.Body, int(blob.Size))
}

// inlineDisposition builds an inline Content-Disposition value. Quotes and
// control characters are dropped from the filename hint.
func inlineDisposition(filename string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, filename)
	if clean == "" {
		clean = "document"
	}
	return `inline; filename="` + clean + `"`
}

// DeleteDocument handles DELETE /documents/:id
func (h *DocumentsHandler) DeleteDocument(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "document")
	if err != nil {
		return respondError(c, h.logger, "Failed to delete document", err)
	}

	doc, err := h.documentService.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to delete document", err)
	}

	return c.JSON(doc)
}

// RegisterRoutes registers the per-client upload and listing routes on the
// /clients group and the single-document routes on the /documents group.
func (h *DocumentsHandler) RegisterRoutes(clients, documents fiber.Router) {
	clients.Post("/:id/documents", h.UploadDocuments)
	clients.Get("/:id/documents", h.ListDocuments)
	documents.Get("/:id", h.GetDocument)
	documents.Delete("/:id", h.DeleteDocument)
}
