package handlers

import (
	"net/http"

	"github.com/JBcollo1/magnet-sub000/internal/models"
	service "github.com/JBcollo1/magnet-sub000/internal/services"
	"github.com/JBcollo1/magnet-sub000/internal/utils"
	"github.com/JBcollo1/magnet-sub000/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	resolve         StoreResolver
	validator       *validator.Validate
}

func NewCheckoutHandler(svc *service.CheckoutService, resolve StoreResolver) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: svc,
		resolve:         resolve,
		validator:       validator.New(),
	}
}

func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CheckoutRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, err)

			return
		}

		if errs := utils.ValidateStruct(h.validator, req); errs != nil {
			response.ValidationError(w, errs)

			return
		}

		st, sid := h.resolve(w, r)

		result, err := h.checkoutService.Checkout(r.Context(), st, sid, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}
