package handlers

import (
	"net/http"

	"fleet-docs-backend/internal/services"
	"fleet-docs-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type DocumentHandler struct {
	fleetService *services.FleetService
	validator    *validator.Validate
}

func NewDocumentHandler(fleetService *services.FleetService) *DocumentHandler {
	return &DocumentHandler{
		fleetService: fleetService,
		validator:    validator.New(),
	}
}

// AddDocument attaches a new document to a vehicle
func (h *DocumentHandler) AddDocument(c *gin.Context) {
	var req services.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	mutation, err := h.fleetService.AddDocument(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondStoreError(c, "Failed to add document", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Document added successfully", mutation)
}

// UpdateDocument applies a partial update or renewal to a document
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	var req services.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	mutation, err := h.fleetService.UpdateDocument(c.Request.Context(), c.Param("id"), c.Param("documentId"), &req)
	if err != nil {
		respondStoreError(c, "Failed to update document", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Document updated successfully", mutation)
}

// DeleteDocument removes a document from a vehicle
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	mutation, err := h.fleetService.DeleteDocument(c.Request.Context(), c.Param("id"), c.Param("documentId"))
	if err != nil {
		respondStoreError(c, "Failed to delete document", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Document deleted successfully", mutation)
}

// GetExpiringDocuments lists documents currently red or yellow, most urgent
// first. Miscellaneous documents are excluded.
func (h *DocumentHandler) GetExpiringDocuments(c *gin.Context) {
	expiring, err := h.fleetService.ExpiringDocuments(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve expiring documents", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expiring documents retrieved successfully", expiring)
}
