// Package gateway is the client for the Order/Payment API. All business
// logic (order totals, payment verification, image approval) lives behind
// that API; this side only calls it and records what it said.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JBcollo1/magnet-sub000/internal/config"
	appErrors "github.com/JBcollo1/magnet-sub000/internal/errors"
	"github.com/JBcollo1/magnet-sub000/internal/models"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Client interface {
	CreateOrder(ctx context.Context, items []models.OrderItemInput) (string, error)
	UpdateOrder(ctx context.Context, req *models.UpdateOrderRequest) error
	RecordPayment(ctx context.Context, req *models.RecordPaymentRequest) (*models.Payment, error)
	ListPickupPoints(ctx context.Context) ([]models.PickupPoint, error)
	DeleteTempImage(ctx context.Context, imageID string) error
}

type restClient struct {
	http *resty.Client
}

func NewClient(cfg *config.Backend) Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTransport(otelhttp.NewTransport(http.DefaultTransport))

	return &restClient{http: client}
}

func (c *restClient) CreateOrder(ctx context.Context, items []models.OrderItemInput) (string, error) {
	var result models.CreateOrderResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&models.CreateOrderRequest{OrderItems: items}).
		SetResult(&result).
		Post("/orders")
	if err != nil {
		return "", appErrors.UpstreamError("Could not reach the order service").WithError(err)
	}

	if !resp.IsSuccess() {
		return "", upstreamError(resp, "Failed to create order")
	}

	orderID := result.ID.String()
	if orderID == "" {
		return "", appErrors.UpstreamError("Order service returned no order id")
	}

	return orderID, nil
}

func (c *restClient) UpdateOrder(ctx context.Context, req *models.UpdateOrderRequest) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Put(fmt.Sprintf("/orders/%s", req.OrderID))
	if err != nil {
		return appErrors.UpstreamError("Could not reach the order service").WithError(err)
	}

	if !resp.IsSuccess() {
		return upstreamError(resp, fmt.Sprintf("Failed to update order %s", req.OrderID))
	}

	return nil
}

func (c *restClient) RecordPayment(ctx context.Context, req *models.RecordPaymentRequest) (*models.Payment, error) {
	var result models.Payment

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/payments")
	if err != nil {
		return nil, appErrors.UpstreamError("Could not reach the payment service").WithError(err)
	}

	if !resp.IsSuccess() {
		return nil, upstreamError(resp, "Failed to confirm payment")
	}

	return &result, nil
}

func (c *restClient) ListPickupPoints(ctx context.Context) ([]models.PickupPoint, error) {
	var result models.PickupPointsResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/pickup-points")
	if err != nil {
		return nil, appErrors.UpstreamError("Could not reach the order service").WithError(err)
	}

	if !resp.IsSuccess() {
		return nil, upstreamError(resp, "Failed to fetch pickup points")
	}

	return result.PickupPoints, nil
}

func (c *restClient) DeleteTempImage(ctx context.Context, imageID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/temp-images/%s", imageID))
	if err != nil {
		return appErrors.UpstreamError("Could not reach the image service").WithError(err)
	}

	if !resp.IsSuccess() {
		return upstreamError(resp, fmt.Sprintf("Failed to delete temp image %s", imageID))
	}

	return nil
}

// upstreamError extracts a human-readable message from the upstream body
// when one is present, falling back to a generic message otherwise. The
// storefront toasts these verbatim.
func upstreamError(resp *resty.Response, fallback string) *appErrors.AppError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	message := fallback

	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Message != "" {
			message = body.Message
		} else if body.Error != "" {
			message = body.Error
		}
	}

	return appErrors.UpstreamError(message).
		WithDetail(fmt.Sprintf("upstream status %d", resp.StatusCode()))
}
