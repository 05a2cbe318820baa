package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/internal/service"
	"github.com/satmoko/studio-backend/pkg/database"
	"github.com/satmoko/studio-backend/pkg/email"
	"github.com/satmoko/studio-backend/pkg/notify"
	"github.com/satmoko/studio-backend/pkg/payment"
	"github.com/satmoko/studio-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testServerKey = "SB-Mid-server-test"

type stubGateway struct{}

func (stubGateway) CreateTransaction(ctx context.Context, txn payment.TransactionRequest) (*payment.TransactionResponse, error) {
	return &payment.TransactionResponse{Token: "snap-token", RedirectURL: "https://checkout.example"}, nil
}

func newWebhookApp(t *testing.T) (*fiber.App, *service.PaymentService, *repository.MemberRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	members := repository.NewMemberRepository(db)
	orders := repository.NewPaymentOrderRepository(db)
	logger := zap.NewNop()
	svc := service.NewPaymentService(db, stubGateway{}, members, orders,
		notify.NoOp{}, email.NewService("", "noreply@test", "Test", logger),
		testServerKey, logger)

	h := NewPaymentHandler(svc, utils.NewValidator(), logger)

	app := fiber.New()
	app.Post("/api/payments/notification", h.HandleNotification)
	return app, svc, members
}

func postNotification(t *testing.T, app *fiber.App, payload interface{}) (int, models.Response) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/payments/notification", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope models.Response
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

// The provider retries on non-2xx, so a bad signature is still
// acknowledged with 200 while the body carries the rejection.
func TestHandleNotification_InvalidSignatureStill200(t *testing.T) {
	app, _, members := newWebhookApp(t)
	require.NoError(t, members.Create(&models.Member{
		FullName: "A", Email: "a@x.com", Password: "x",
		Status: models.MemberStatusPending,
	}))

	status, envelope := postNotification(t, app, models.GatewayNotification{
		OrderID:           "SS-unknown",
		StatusCode:        "200",
		GrossAmount:       "249000.00",
		SignatureKey:      "deadbeef",
		TransactionStatus: "settlement",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Invalid signature", envelope.Error)
}

func TestHandleNotification_ValidSettlement(t *testing.T) {
	app, svc, members := newWebhookApp(t)
	require.NoError(t, members.Create(&models.Member{
		FullName: "A", Email: "a@x.com", Password: "x",
		Status: models.MemberStatusPending,
	}))

	checkout, err := svc.Checkout(context.Background(), "a@x.com", "creator")
	require.NoError(t, err)

	status, envelope := postNotification(t, app, models.GatewayNotification{
		OrderID:           checkout.OrderID,
		StatusCode:        "200",
		GrossAmount:       "249000.00",
		SignatureKey:      payment.Signature(checkout.OrderID, "200", "249000.00", testServerKey),
		TransactionStatus: "settlement",
		FraudStatus:       "accept",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, envelope.Success)

	member, err := members.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.MemberStatusActive, member.Status)
	assert.Equal(t, int64(1000), member.Credits)
}

func TestHandleNotification_MalformedPayload(t *testing.T) {
	app, _, _ := newWebhookApp(t)

	req := httptest.NewRequest("POST", "/api/payments/notification", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
