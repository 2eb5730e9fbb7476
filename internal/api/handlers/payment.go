package handlers

import (
	"net/http"

	"github.com/JBcollo1/magnet-sub000/internal/models"
	service "github.com/JBcollo1/magnet-sub000/internal/services"
	"github.com/JBcollo1/magnet-sub000/internal/utils"
	"github.com/JBcollo1/magnet-sub000/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	resolve        StoreResolver
	validator      *validator.Validate
}

func NewPaymentHandler(svc *service.PaymentService, resolve StoreResolver) *PaymentHandler {
	return &PaymentHandler{
		paymentService: svc,
		resolve:        resolve,
		validator:      validator.New(),
	}
}

func (h *PaymentHandler) RecordPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PaymentRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, err)

			return
		}

		if errs := utils.ValidateStruct(h.validator, req); errs != nil {
			response.ValidationError(w, errs)

			return
		}

		_, sid := h.resolve(w, r)

		payment, err := h.paymentService.Record(r.Context(), sid, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, payment)
	}
}
