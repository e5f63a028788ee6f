package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workplaceHandler handles HTTP requests related to workplaces.
type workplaceHandler struct {
	workplaceService portssvc.WorkplaceSvcFacade
}

// newWorkplaceHandler creates a new workplaceHandler.
func newWorkplaceHandler(ws portssvc.WorkplaceSvcFacade) *workplaceHandler {
	return &workplaceHandler{
		workplaceService: ws,
	}
}

// registerWorkplaceRoutes registers routes related to workplaces and their members,
// and nests every workplace-scoped resource under /workplaces/:workplace_id.
func registerWorkplaceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newWorkplaceHandler(services.Workplace)

	workplacesTopLevel := rg.Group("/workplaces")
	{
		workplacesTopLevel.POST("", h.createWorkplace)
		workplacesTopLevel.GET("", h.listUserWorkplaces)
	}

	workplaceSpecific := rg.Group("/workplaces/:workplace_id")
	{
		workplaceSpecific.POST("/users", h.addUserToWorkplace)

		RegisterAccountRoutes(workplaceSpecific, services.Account)
		RegisterJournalRoutes(workplaceSpecific, services.Journal)
		RegisterProductRoutes(workplaceSpecific, services.Inventory)
		RegisterBillRoutes(workplaceSpecific, services.Bill)
	}
}

// createWorkplace godoc
// @Summary Create a new workplace
// @Description Creates a new workplace and assigns the creator as admin.
// @Tags workplaces
// @Accept  json
// @Produce  json
// @Param   workplace body dto.CreateWorkplaceRequest true "Workplace details"
// @Success 201 {object} dto.WorkplaceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create workplace"
// @Security BearerAuth
// @Router /workplaces [post]
func (h *workplaceHandler) createWorkplace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkplace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	newWorkplace, err := h.workplaceService.CreateWorkplace(c.Request.Context(), req.Name, req.Description, req.DefaultCurrencyCode, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create workplace")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkplaceResponse(newWorkplace))
}

// listUserWorkplaces godoc
// @Summary List workplaces for current user
// @Description Retrieves a list of workplaces the authenticated user belongs to.
// @Tags workplaces
// @Produce  json
// @Success 200 {object} dto.ListWorkplacesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list workplaces"
// @Security BearerAuth
// @Router /workplaces [get]
func (h *workplaceHandler) listUserWorkplaces(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	workplaces, err := h.workplaceService.ListUserWorkplaces(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list workplaces")
		return
	}

	logger.Debug("Workplaces listed", slog.Int("count", len(workplaces)))
	c.JSON(http.StatusOK, dto.ToListWorkplacesResponse(workplaces))
}

// addUserToWorkplace godoc
// @Summary Add a user to a workplace
// @Description Adds a specified user to a workplace with a given role (requires admin permission).
// @Tags workplaces
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   user_details body dto.AddUserToWorkplaceRequest true "User ID and Role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Workplace not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/users [post]
func (h *workplaceHandler) addUserToWorkplace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var req dto.AddUserToWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddUserToWorkplace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	if err := h.workplaceService.AddUserToWorkplace(c.Request.Context(), addingUserID, req.UserID, workplaceID, req.Role); err != nil {
		respondWithError(c, logger, err, "Failed to add user to workplace")
		return
	}

	c.Status(http.StatusNoContent)
}
