package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstock "github.com/hotelstock/backend/internal/application/stock"
)

// StockItemHandler handles stock item API endpoints
type StockItemHandler struct {
	BaseHandler
	itemService *appstock.ItemService
}

// NewStockItemHandler creates a new StockItemHandler
func NewStockItemHandler(itemService *appstock.ItemService) *StockItemHandler {
	return &StockItemHandler{itemService: itemService}
}

// Create godoc
// @Summary      Create stock item
// @Description  Create a stock item with a fixed unit-of-measure class
// @Tags         stock-items
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        request body appstock.CreateStockItemRequest true "Item details"
// @Success      201 {object} dto.Response{data=appstock.StockItemResponse}
// @Router       /stock/items [post]
func (h *StockItemHandler) Create(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	var req appstock.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.itemService.Create(c.Request.Context(), hotelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID godoc
// @Summary      Get stock item
// @Tags         stock-items
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=appstock.StockItemResponse}
// @Router       /stock/items/{id} [get]
func (h *StockItemHandler) GetByID(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	result, err := h.itemService.GetByID(c.Request.Context(), hotelID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetBySKU godoc
// @Summary      Get stock item by SKU
// @Tags         stock-items
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        sku path string true "Item SKU"
// @Success      200 {object} dto.Response{data=appstock.StockItemResponse}
// @Router       /stock/items/sku/{sku} [get]
func (h *StockItemHandler) GetBySKU(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "SKU is required")
		return
	}

	result, err := h.itemService.GetBySKU(c.Request.Context(), hotelID, sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @Summary      List stock items
// @Tags         stock-items
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        search query string false "Search term (SKU, name, category)"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]appstock.StockItemResponse}
// @Router       /stock/items [get]
func (h *StockItemHandler) List(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	filter := appstock.StockItemListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.itemService.List(c.Request.Context(), hotelID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateCosts godoc
// @Summary      Update stock item costs
// @Description  Update unit cost and menu price; conversion attributes stay fixed
// @Tags         stock-items
// @Accept       json
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body appstock.UpdateStockItemCostsRequest true "New costs"
// @Success      200 {object} dto.Response{data=appstock.StockItemResponse}
// @Router       /stock/items/{id}/costs [put]
func (h *StockItemHandler) UpdateCosts(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req appstock.UpdateStockItemCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.itemService.UpdateCosts(c.Request.Context(), hotelID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate godoc
// @Summary      Deactivate stock item
// @Tags         stock-items
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Item ID" format(uuid)
// @Success      204
// @Router       /stock/items/{id}/deactivate [post]
func (h *StockItemHandler) Deactivate(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.itemService.Deactivate(c.Request.Context(), hotelID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate godoc
// @Summary      Activate stock item
// @Tags         stock-items
// @Produce      json
// @Param        X-Hotel-ID header string false "Hotel ID (optional for dev)"
// @Param        id path string true "Item ID" format(uuid)
// @Success      204
// @Router       /stock/items/{id}/activate [post]
func (h *StockItemHandler) Activate(c *gin.Context) {
	hotelID, err := getHotelID(c)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.itemService.Activate(c.Request.Context(), hotelID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
