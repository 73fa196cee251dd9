package handlers

import (
	"errors"
	"net/http"

	"fleet-docs-backend/internal/repository"
	"fleet-docs-backend/internal/services"
	"fleet-docs-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type VehicleHandler struct {
	fleetService *services.FleetService
	validator    *validator.Validate
}

func NewVehicleHandler(fleetService *services.FleetService) *VehicleHandler {
	return &VehicleHandler{
		fleetService: fleetService,
		validator:    validator.New(),
	}
}

// GetVehicles lists all vehicles with computed statuses, most urgent first.
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	vehicles, err := h.fleetService.ListVehicles(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve vehicles", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

// GetVehicle retrieves a specific vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.fleetService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, "Failed to retrieve vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle retrieved successfully", vehicle)
}

// CreateVehicle creates a new vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req services.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	mutation, err := h.fleetService.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		respondStoreError(c, "Failed to create vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Vehicle created successfully", mutation)
}

// UpdateVehicle applies a partial update to a vehicle
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req services.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	mutation, err := h.fleetService.UpdateVehicle(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondStoreError(c, "Failed to update vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle updated successfully", mutation)
}

// DeleteVehicle deletes a vehicle and its documents
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	mutation, err := h.fleetService.DeleteVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, "Failed to delete vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle deleted successfully", mutation)
}

// respondStoreError maps domain errors to their HTTP status. Duplicate
// plates get a distinct conflict response so the UI can show a specific
// message.
func respondStoreError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicatePlate):
		utils.ErrorResponse(c, http.StatusConflict, "License plate already exists", err)
	case errors.Is(err, repository.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, message, err)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}
