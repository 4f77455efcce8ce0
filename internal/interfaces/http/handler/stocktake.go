package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstock "github.com/hotelstock/backend/internal/application/stock"
)

// StocktakeHandler handles stocktake worksheet API endpoints
type StocktakeHandler struct {
	BaseHandler
	stocktakeService *appstock.StocktakeService
}

// NewStocktakeHandler creates a new StocktakeHandler
func NewStocktakeHandler(stocktakeService *appstock.StocktakeService) *StocktakeHandler {
	return &StocktakeHandler{stocktakeService: stocktakeService}
}

// GetByID godoc
// @Summary      Get stocktake
// @Tags         stocktakes
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Stocktake ID" format(uuid)
// @Success      200 {object} dto.Response{data=appstock.StocktakeResponse}
// @Router       /stock/stocktakes/{id} [get]
func (h *StocktakeHandler) GetByID(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stocktake ID format")
		return
	}

	result, err := h.stocktakeService.GetByID(c.Request.Context(), hotelID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordCounts godoc
// @Summary      Record physical counts
// @Description  Records raw full/partial counts for one or more items; derived quantities are recomputed through each line's frozen conversion attributes
// @Tags         stocktakes
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Stocktake ID" format(uuid)
// @Param        request body appstock.RecordCountsRequest true "Counts"
// @Success      200 {object} dto.Response{data=appstock.StocktakeResponse}
// @Router       /stock/stocktakes/{id}/counts [post]
func (h *StocktakeHandler) RecordCounts(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stocktake ID format")
		return
	}

	var req appstock.RecordCountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.stocktakeService.RecordCounts(c.Request.Context(), hotelID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AddPurchase godoc
// @Summary      Record a purchase movement
// @Description  Adds purchased stock to a line in physical units, converted to the item's base unit
// @Tags         stocktakes
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Stocktake ID" format(uuid)
// @Param        request body appstock.RecordMovementRequest true "Movement"
// @Success      200 {object} dto.Response{data=appstock.StocktakeResponse}
// @Router       /stock/stocktakes/{id}/purchases [post]
func (h *StocktakeHandler) AddPurchase(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stocktake ID format")
		return
	}

	var req appstock.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.stocktakeService.AddPurchase(c.Request.Context(), hotelID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AddWaste godoc
// @Summary      Record a waste movement
// @Tags         stocktakes
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Stocktake ID" format(uuid)
// @Param        request body appstock.RecordMovementRequest true "Movement"
// @Success      200 {object} dto.Response{data=appstock.StocktakeResponse}
// @Router       /stock/stocktakes/{id}/waste [post]
func (h *StocktakeHandler) AddWaste(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stocktake ID format")
		return
	}

	var req appstock.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.stocktakeService.AddWaste(c.Request.Context(), hotelID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Approve godoc
// @Summary      Approve a stocktake
// @Description  Freezes the worksheet and writes one closing snapshot per counted line. Retrying an already-approved stocktake returns the original summary.
// @Tags         stocktakes
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Stocktake ID" format(uuid)
// @Param        request body appstock.ApproveStocktakeRequest true "Approving actor"
// @Success      200 {object} dto.Response{data=appstock.ApprovalSummaryResponse}
// @Router       /stock/stocktakes/{id}/approve [post]
func (h *StocktakeHandler) Approve(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stocktake ID format")
		return
	}

	var req appstock.ApproveStocktakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.stocktakeService.Approve(c.Request.Context(), hotelID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// VarianceReport godoc
// @Summary      Get variance report
// @Description  Per-line counted vs expected variance in quantity and value, display-rounded
// @Tags         stocktakes
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Stocktake ID" format(uuid)
// @Success      200 {object} dto.Response{data=appstock.VarianceReportResponse}
// @Router       /stock/stocktakes/{id}/variance-report [get]
func (h *StocktakeHandler) VarianceReport(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stocktake ID format")
		return
	}

	result, err := h.stocktakeService.VarianceReport(c.Request.Context(), hotelID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
