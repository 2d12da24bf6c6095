// server/internal/api/handlers/inventory_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"phc-ops-api-server/internal/inventory"
	"phc-ops-api-server/internal/models"
	"phc-ops-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryHandler struct {
	DB  *gorm.DB
	Hub *socket.Hub
}

type CreateItemRequest struct {
	PHCID                uint    `json:"phc_id" binding:"required"`
	ItemName             string  `json:"item_name" binding:"required,max=255"`
	ItemType             string  `json:"item_type"`
	Unit                 string  `json:"unit"`
	CurrentStock         int     `json:"current_stock" binding:"min=0"`
	DailyConsumptionRate float64 `json:"daily_consumption_rate"`
}

type UpdateItemRequest struct {
	CurrentStock         *int     `json:"current_stock" binding:"omitempty,min=0"`
	DailyConsumptionRate *float64 `json:"daily_consumption_rate"`
	Unit                 *string  `json:"unit"`
	ItemType             *string  `json:"item_type"`
}

type CreateRestockRequestPayload struct {
	ItemName       string `json:"item_name" binding:"required"`
	PHCID          uint   `json:"phc_id" binding:"required"`
	QuantityNeeded int    `json:"quantity_needed" binding:"required,gt=0"`
}

type UpdateRestockRequestPayload struct {
	Status   string `json:"status" binding:"required"`
	Comments string `json:"comments"`
}

type StockUpdate struct {
	ItemName     string `json:"item_name" binding:"required"`
	QuantityUsed int    `json:"quantity_used" binding:"required,gt=0"`
}

// GetLowStockItems lists items projected to run out within threshold_days.
// Items with a zero or negative consumption rate have no defined depletion
// horizon and are excluded.
func (h *InventoryHandler) GetLowStockItems(c *gin.Context) {
	thresholdDays := inventory.DefaultThresholdDays
	if raw := c.Query("threshold_days"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold_days must be a number"})
			return
		}
		thresholdDays = parsed
	}

	query := h.DB.Model(&models.InventoryItem{})
	if phcID := c.Query("phc_id"); phcID != "" {
		query = query.Where("phc_id = ?", phcID)
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory", "details": err.Error()})
		return
	}

	lowStock := []models.InventoryItem{}
	for _, item := range items {
		days := inventory.DaysRemaining(item.CurrentStock, item.DailyConsumptionRate)
		if days == nil || *days > thresholdDays {
			continue
		}
		item.DaysRemaining = days
		lowStock = append(lowStock, item)
	}

	c.JSON(http.StatusOK, lowStock)
}

// AutoRestockCheck sweeps the inventory and generates restock requests for
// every item at or below the default threshold that has no pending request
// yet. The partial unique index on (item_name, phc_id, status=pending)
// closes the race with concurrent sweeps: a duplicate insert is treated as
// "already requested" and skipped.
func (h *InventoryHandler) AutoRestockCheck(c *gin.Context) {
	query := h.DB.Model(&models.InventoryItem{})
	if phcID := c.Query("phc_id"); phcID != "" {
		query = query.Where("phc_id = ?", phcID)
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory", "details": err.Error()})
		return
	}

	qualifying := 0
	created := []models.RestockRequest{}

	for _, item := range items {
		days := inventory.DaysRemaining(item.CurrentStock, item.DailyConsumptionRate)
		if days == nil || *days > inventory.DefaultThresholdDays {
			continue
		}
		qualifying++

		// Persist the recomputed snapshot on the inventory row.
		h.DB.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
			UpdateColumn("days_remaining", *days)

		// Skip items that already have an open request.
		var existing models.RestockRequest
		err := h.DB.Where("item_name = ? AND phc_id = ? AND status = ?",
			item.ItemName, item.PHCID, "pending").First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing requests", "details": err.Error()})
			return
		}

		var phcName string
		h.DB.Model(&models.PHCUser{}).Where("id = ?", item.PHCID).
			Pluck("phc_name", &phcName)

		request := models.RestockRequest{
			RequestID:      fmt.Sprintf("RSTK-%s", uuid.New().String()[:8]),
			ItemName:       item.ItemName,
			PHCID:          item.PHCID,
			PHCName:        phcName,
			QuantityNeeded: inventory.SuggestedQuantity(item.DailyConsumptionRate),
			Status:         "pending",
			PriorityLevel:  inventory.PriorityFor(*days, inventory.DefaultThresholdDays),
			DaysRemaining:  *days,
			RequestDate:    time.Now(),
		}

		if err := h.DB.Create(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent sweep created the pending request first.
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restock request", "details": err.Error()})
			return
		}

		created = append(created, request)
	}

	if qualifying == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No low-stock items found"})
		return
	}

	if len(created) > 0 && h.Hub != nil {
		payload, _ := json.Marshal(gin.H{
			"type":    "restock_requests_created",
			"count":   len(created),
			"message": fmt.Sprintf("%d restock requests created by the automatic sweep.", len(created)),
		})
		h.Hub.Broadcast(payload)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("%d restock requests created successfully.", len(created)),
		"requests": created,
	})
}

// CreateRestockRequest records a manual PHC-to-LGA restock request with the
// priority and days-remaining snapshot computed from the inventory row.
func (h *InventoryHandler) CreateRestockRequest(c *gin.Context) {
	var payload CreateRestockRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.InventoryItem
	err := h.DB.Where("item_name = ? AND phc_id = ?", payload.ItemName, payload.PHCID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in inventory for this PHC"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item", "details": err.Error()})
		}
		return
	}

	var daysRemaining float64
	if days := inventory.DaysRemaining(item.CurrentStock, item.DailyConsumptionRate); days != nil {
		daysRemaining = *days
	}

	var phcName string
	h.DB.Model(&models.PHCUser{}).Where("id = ?", item.PHCID).Pluck("phc_name", &phcName)

	request := models.RestockRequest{
		RequestID:      fmt.Sprintf("RSTK-%s", uuid.New().String()[:8]),
		ItemName:       payload.ItemName,
		PHCID:          payload.PHCID,
		PHCName:        phcName,
		QuantityNeeded: payload.QuantityNeeded,
		Status:         "pending",
		PriorityLevel:  inventory.PriorityFor(daysRemaining, inventory.DefaultThresholdDays),
		DaysRemaining:  daysRemaining,
		RequestDate:    time.Now(),
	}

	if err := h.DB.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A pending restock request already exists for this item"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restock request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, request)
}

// GetRestockRequests lists restock requests for LGA review, filterable by
// phc_id, phc_name or status.
func (h *InventoryHandler) GetRestockRequests(c *gin.Context) {
	query := h.DB.Model(&models.RestockRequest{})

	if phcID := c.Query("phc_id"); phcID != "" {
		query = query.Where("phc_id = ?", phcID)
	}
	if phcName := c.Query("phc_name"); phcName != "" {
		query = query.Where("LOWER(phc_name) LIKE LOWER(?)", "%"+phcName+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.RestockRequest
	if err := query.Order("request_date desc").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query restock requests", "details": err.Error()})
		return
	}

	if requests == nil {
		requests = []models.RestockRequest{}
	}

	c.JSON(http.StatusOK, requests)
}

// UpdateRestockRequest lets the LGA admin approve or decline a request.
// The status is a plain string; leaving "pending" makes the request terminal
// by convention only.
func (h *InventoryHandler) UpdateRestockRequest(c *gin.Context) {
	var payload UpdateRestockRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.RestockRequest
	if err := h.DB.First(&request, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restock request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve restock request", "details": err.Error()})
		}
		return
	}

	request.Status = payload.Status
	request.Comments = payload.Comments

	if err := h.DB.Save(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restock request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}

// UpdateStock applies a batch of consumption updates. Stock floors at zero
// and the days-remaining snapshot is recomputed per item.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var updates []StockUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phcID := c.DefaultQuery("phc_id", "1")

	applied := 0
	for _, update := range updates {
		var item models.InventoryItem
		err := h.DB.Where("LOWER(item_name) LIKE LOWER(?) AND phc_id = ?",
			"%"+update.ItemName+"%", phcID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item", "details": err.Error()})
			return
		}

		item.CurrentStock -= update.QuantityUsed
		if item.CurrentStock < 0 {
			item.CurrentStock = 0
		}
		item.DaysRemaining = inventory.DaysRemaining(item.CurrentStock, item.DailyConsumptionRate)

		if err := h.DB.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock", "details": err.Error()})
			return
		}
		applied++
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock levels updated successfully.",
		"applied": applied,
	})
}

// GetItems returns a page of inventory rows.
func (h *InventoryHandler) GetItems(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.DB.Model(&models.InventoryItem{})
	if phcID := c.Query("phc_id"); phcID != "" {
		query = query.Where("phc_id = ?", phcID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count inventory", "details": err.Error()})
		return
	}

	var items []models.InventoryItem
	if err := query.Order("item_name asc").Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory", "details": err.Error()})
		return
	}

	if items == nil {
		items = []models.InventoryItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// AddItem creates a new inventory row for a PHC.
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var phc models.PHCUser
	if err := h.DB.First(&phc, "id = ?", req.PHCID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PHC not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve PHC", "details": err.Error()})
		}
		return
	}

	item := models.InventoryItem{
		PHCID:                req.PHCID,
		ItemName:             req.ItemName,
		ItemType:             req.ItemType,
		Unit:                 req.Unit,
		CurrentStock:         req.CurrentStock,
		DailyConsumptionRate: req.DailyConsumptionRate,
		DaysRemaining:        inventory.DaysRemaining(req.CurrentStock, req.DailyConsumptionRate),
	}

	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem applies a partial update to an inventory row and recomputes the
// days-remaining snapshot.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item", "details": err.Error()})
		}
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CurrentStock != nil {
		item.CurrentStock = *req.CurrentStock
	}
	if req.DailyConsumptionRate != nil {
		item.DailyConsumptionRate = *req.DailyConsumptionRate
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.ItemType != nil {
		item.ItemType = *req.ItemType
	}
	item.DaysRemaining = inventory.DaysRemaining(item.CurrentStock, item.DailyConsumptionRate)

	if err := h.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}
