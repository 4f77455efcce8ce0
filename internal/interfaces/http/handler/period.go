package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstock "github.com/hotelstock/backend/internal/application/stock"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/interfaces/http/dto"
)

// PeriodHandler handles stock period lifecycle API endpoints
type PeriodHandler struct {
	BaseHandler
	periodService    *appstock.PeriodService
	stocktakeService *appstock.StocktakeService
}

// NewPeriodHandler creates a new PeriodHandler
func NewPeriodHandler(periodService *appstock.PeriodService, stocktakeService *appstock.StocktakeService) *PeriodHandler {
	return &PeriodHandler{
		periodService:    periodService,
		stocktakeService: stocktakeService,
	}
}

// Create godoc
// @Summary      Open a stock period
// @Description  Opens a period for a calendar month and creates its stocktake worksheet with openings carried forward from the predecessor's snapshots
// @Tags         stock-periods
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        request body appstock.CreatePeriodRequest true "Period details"
// @Success      201 {object} dto.Response{data=appstock.PeriodResponse}
// @Router       /stock/periods [post]
func (h *PeriodHandler) Create(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	var req appstock.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.periodService.Create(c.Request.Context(), hotelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID godoc
// @Summary      Get stock period
// @Tags         stock-periods
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Period ID" format(uuid)
// @Success      200 {object} dto.Response{data=appstock.PeriodResponse}
// @Router       /stock/periods/{id} [get]
func (h *PeriodHandler) GetByID(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	result, err := h.periodService.GetByID(c.Request.Context(), hotelID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @Summary      List stock periods
// @Tags         stock-periods
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]appstock.PeriodResponse}
// @Router       /stock/periods [get]
func (h *PeriodHandler) List(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}

	periods, err := h.periodService.List(c.Request.Context(), hotelID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, periods)
}

// Close godoc
// @Summary      Close a stock period
// @Description  Closes a period after its stocktake is approved; rewrites any missing closing snapshots before committing
// @Tags         stock-periods
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Period ID" format(uuid)
// @Param        request body appstock.ClosePeriodRequest true "Closing actor"
// @Success      200 {object} dto.Response{data=appstock.PeriodResponse}
// @Router       /stock/periods/{id}/close [post]
func (h *PeriodHandler) Close(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	var req appstock.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.periodService.Close(c.Request.Context(), hotelID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Reopen godoc
// @Summary      Reopen a closed stock period
// @Description  Returns the period and its stocktake to an editable state; close stamps are retained for audit
// @Tags         stock-periods
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Period ID" format(uuid)
// @Param        request body appstock.ReopenPeriodRequest true "Reopening actor"
// @Success      200 {object} dto.Response{data=appstock.PeriodResponse}
// @Router       /stock/periods/{id}/reopen [post]
func (h *PeriodHandler) Reopen(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	var req appstock.ReopenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.periodService.Reopen(c.Request.Context(), hotelID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetStocktake godoc
// @Summary      Get the period's stocktake
// @Tags         stock-periods
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Period ID" format(uuid)
// @Success      200 {object} dto.Response{data=appstock.StocktakeResponse}
// @Router       /stock/periods/{id}/stocktake [get]
func (h *PeriodHandler) GetStocktake(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	result, err := h.stocktakeService.GetByPeriod(c.Request.Context(), hotelID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetSnapshots godoc
// @Summary      Get the period's closing snapshots
// @Tags         stock-periods
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Period ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appstock.SnapshotResponse}
// @Router       /stock/periods/{id}/snapshots [get]
func (h *PeriodHandler) GetSnapshots(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	result, err := h.stocktakeService.Snapshots(c.Request.Context(), hotelID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
