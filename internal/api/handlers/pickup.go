package handlers

import (
	"net/http"

	service "github.com/JBcollo1/magnet-sub000/internal/services"
	"github.com/JBcollo1/magnet-sub000/internal/utils/response"
)

type PickupPointHandler struct {
	pickupService *service.PickupPointService
}

func NewPickupPointHandler(svc *service.PickupPointService) *PickupPointHandler {
	return &PickupPointHandler{pickupService: svc}
}

func (h *PickupPointHandler) ListPickupPoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := h.pickupService.List(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, points)
	}
}
