package handlers

import (
	"net/http"
	"strconv"

	appErrors "github.com/JBcollo1/magnet-sub000/internal/errors"

	"github.com/JBcollo1/magnet-sub000/internal/models"
	service "github.com/JBcollo1/magnet-sub000/internal/services"
	"github.com/JBcollo1/magnet-sub000/internal/store"
	"github.com/JBcollo1/magnet-sub000/internal/utils"
	"github.com/JBcollo1/magnet-sub000/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// StoreResolver picks the cart store for one request. The cookie backend
// needs the response writer (it persists by Set-Cookie); the redis and
// postgres backends need the signed session id. Resolving both here keeps
// the handlers backend-agnostic.
type StoreResolver func(w http.ResponseWriter, r *http.Request) (store.Store, string)

type CartHandler struct {
	cartService *service.CartService
	resolve     StoreResolver
	validator   *validator.Validate
}

func NewCartHandler(svc *service.CartService, resolve StoreResolver) *CartHandler {
	return &CartHandler{
		cartService: svc,
		resolve:     resolve,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, sid := h.resolve(w, r)

		response.Success(w, http.StatusOK, h.cartService.GetCart(r.Context(), st, sid))
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AddItemRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, err)

			return
		}

		if errs := utils.ValidateStruct(h.validator, req); errs != nil {
			response.ValidationError(w, errs)

			return
		}

		st, sid := h.resolve(w, r)

		response.Success(w, http.StatusOK, h.cartService.AddItem(r.Context(), st, sid, &req))
	}
}

func (h *CartHandler) AddCustomItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AddCustomItemRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, err)

			return
		}

		if errs := utils.ValidateStruct(h.validator, req); errs != nil {
			response.ValidationError(w, errs)

			return
		}

		st, sid := h.resolve(w, r)

		view, err := h.cartService.AddCustomItem(r.Context(), st, sid, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, view)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateQuantityRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, err)

			return
		}

		if errs := utils.ValidateStruct(h.validator, req); errs != nil {
			response.ValidationError(w, errs)

			return
		}

		st, sid := h.resolve(w, r)

		response.Success(w, http.StatusOK, h.cartService.UpdateQuantity(r.Context(), st, sid, &req))
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Product ID must be numeric"))

			return
		}

		st, sid := h.resolve(w, r)

		response.Success(w, http.StatusOK, h.cartService.RemoveItem(r.Context(), st, sid, productID))
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, sid := h.resolve(w, r)

		h.cartService.ClearCart(r.Context(), st, sid)

		response.Success(w, http.StatusOK, &models.CartView{Items: []models.CartLineItem{}})
	}
}

func (h *CartHandler) OrderGroups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, sid := h.resolve(w, r)

		response.Success(w, http.StatusOK, h.cartService.OrderGroups(r.Context(), st, sid))
	}
}
