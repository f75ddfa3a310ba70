package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
)

func setupClientsTestApp(svc *MockClientService) *fiber.App {
	app := fiber.New()
	NewClientsHandler(svc, zap.NewNop()).RegisterRoutes(app.Group("/clients"))
	return app
}

func TestClientsHandler_CreateClient(t *testing.T) {
	t.Run("returns 201 with the created row", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		created := &domain.Client{ID: uuid.New(), Email: "a@b.com", ConversationStatus: domain.StatusPending}
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in *domain.ClientInput) bool {
			return in.Email == "a@b.com" && in.PaymentDetails != nil && in.PaymentDetails.AmountPaid == 500
		})).Return(created, nil)

		body := map[string]interface{}{
			"email":               "a@b.com",
			"conversation_status": "Pending",
			"paymentDetails": map[string]interface{}{
				"amount_paid":  500,
				"total_amount": 1000,
				"balance":      500,
			},
		}
		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/clients", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got domain.Client
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, created.ID, got.ID)
		svc.AssertExpectations(t)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader("{not json"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation error carries field details", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.Validation("validation failed").WithDetail("email", "email is required"))

		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/clients", map[string]string{"project": "x"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		errResp := decodeError(t, resp.Body)
		assert.Equal(t, "Bad Request", errResp.Error)
		assert.Equal(t, "email is required", errResp.Details["email"])
	})

	t.Run("persistence failure is 500 without internals", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.Persistence("failed to create client", errors.New("pq: password=secret")))

		resp, err := app.Test(newJSONRequest(t, http.MethodPost, "/clients", map[string]string{"email": "a@b.com"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		errResp := decodeError(t, resp.Body)
		assert.Equal(t, "Failed to create client", errResp.Message)
		assert.NotContains(t, errResp.Message, "secret")
	})
}

func TestClientsHandler_ListClients(t *testing.T) {
	tests := []struct {
		path   string
		filter domain.ClientFilter
	}{
		{"/clients", domain.ClientFilterAll},
		{"/clients/finalized", domain.ClientFilterFinalized},
		{"/clients/pending", domain.ClientFilterPending},
		{"/clients/high-quality", domain.ClientFilterHighQuality},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc := new(MockClientService)
			app := setupClientsTestApp(svc)

			clients := []*domain.Client{{ID: uuid.New(), Email: "a@b.com"}}
			svc.On("List", mock.Anything, tt.filter).Return(clients, nil)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var got []domain.Client
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Len(t, got, 1)
			svc.AssertExpectations(t)
			svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}

	t.Run("empty result is an empty array", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)
		svc.On("List", mock.Anything, domain.ClientFilterAll).Return(nil, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/clients", nil))
		require.NoError(t, err)

		var raw []json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		assert.NotNil(t, raw)
		assert.Empty(t, raw)
	})
}

func TestClientsHandler_GetClient(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		id := uuid.New()
		svc.On("Get", mock.Anything, id).Return(&domain.Client{ID: id}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/clients/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing row is 404", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		id := uuid.New()
		svc.On("Get", mock.Anything, id).Return(nil, apperrors.NotFound("client"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/clients/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "client not found", decodeError(t, resp.Body).Message)
	})

	t.Run("non-uuid id is 404", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/clients/42", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestClientsHandler_UpdateClient(t *testing.T) {
	t.Run("returns updated row", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		id := uuid.New()
		svc.On("Update", mock.Anything, id, mock.MatchedBy(func(in *domain.ClientInput) bool {
			return in.ConversationStatus == domain.StatusFinalizedDeal
		})).Return(&domain.Client{ID: id, ConversationStatus: domain.StatusFinalizedDeal}, nil)

		body := map[string]string{"email": "a@b.com", "conversation_status": "Finalized Deal"}
		resp, err := app.Test(newJSONRequest(t, http.MethodPut, "/clients/"+id.String(), body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.Client
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, domain.StatusFinalizedDeal, got.ConversationStatus)
	})

	t.Run("missing row is 404", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		id := uuid.New()
		svc.On("Update", mock.Anything, id, mock.Anything).Return(nil, apperrors.NotFound("client"))

		resp, err := app.Test(newJSONRequest(t, http.MethodPut, "/clients/"+id.String(), map[string]string{"email": "a@b.com"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestClientsHandler_DeleteClient(t *testing.T) {
	t.Run("returns deleted row", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		id := uuid.New()
		svc.On("Delete", mock.Anything, id).Return(&domain.Client{ID: id, Email: "gone@b.com"}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/clients/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.Client
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "gone@b.com", got.Email)
	})

	t.Run("missing row is 404", func(t *testing.T) {
		svc := new(MockClientService)
		app := setupClientsTestApp(svc)

		id := uuid.New()
		svc.On("Delete", mock.Anything, id).Return(nil, apperrors.NotFound("client"))

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/clients/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
