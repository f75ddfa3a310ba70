package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
)

// ClientService is the client operations used by ClientsHandler
type ClientService interface {
	Create(ctx context.Context, input *domain.ClientInput) (*domain.Client, error)
	List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Client, error)
}

// ClientsHandler handles client endpoints
type ClientsHandler struct {
	clientService ClientService
	logger        *zap.Logger
}

// NewClientsHandler creates a new clients handler
func NewClientsHandler(clientService ClientService, logger *zap.Logger) *ClientsHandler {
	return &ClientsHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// CreateClient handles POST /clients
func (h *ClientsHandler) CreateClient(c *fiber.Ctx) error {
	var input domain.ClientInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	client, err := h.clientService.Create(c.Context(), &input)
	if err != nil {
		return respondError(c, h.logger, "Failed to create client", err)
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

// ListClients returns a handler for GET /clients and its named filter routes
func (h *ClientsHandler) ListClients(filter domain.ClientFilter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clients, err := h.clientService.List(c.Context(), filter)
		if err != nil {
			return respondError(c, h.logger, "Failed to list clients", err)
		}
		if clients == nil {
			clients = []*domain.Client{}
		}
		return c.JSON(clients)
	}
}

// GetClient handles GET /clients/:id
func (h *ClientsHandler) GetClient(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "client")
	if err != nil {
		return respondError(c, h.logger, "Failed to get client", err)
	}

	client, err := h.clientService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to get client", err)
	}

	return c.JSON(client)
}

// UpdateClient handles PUT /clients/:id
func (h *ClientsHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "client")
	if err != nil {
		return respondError(c, h.logger, "Failed to update client", err)
	}

	var input domain.ClientInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	client, err := h.clientService.Update(c.Context(), id, &input)
	if err != nil {
		return respondError(c, h.logger, "Failed to update client", err)
	}

	return c.JSON(client)
}

// DeleteClient handles DELETE /clients/:id
func (h *ClientsHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "client")
	if err != nil {
		return respondError(c, h.logger, "Failed to delete client", err)
	}

	client, err := h.clientService.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to delete client", err)
	}

	return c.JSON(client)
}

// RegisterRoutes registers client routes on the /clients group. Named
// filters are registered ahead of /:id so they are not read as ids.
func (h *ClientsHandler) RegisterRoutes(clients fiber.Router) {
	clients.Post("/", h.CreateClient)
	clients.Get("/", h.ListClients(domain.ClientFilterAll))
	clients.Get("/finalized", h.ListClients(domain.ClientFilterFinalized))
	clients.Get("/pending", h.ListClients(domain.ClientFilterPending))
	clients.Get("/high-quality", h.ListClients(domain.ClientFilterHighQuality))
	clients.Get("/:id", h.GetClient)
	clients.Put("/:id", h.UpdateClient)
	clients.Delete("/:id", h.DeleteClient)
}
