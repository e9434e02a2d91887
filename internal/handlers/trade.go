// internal/handlers/trade.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookswap/bookswap-api/internal/i18n"
	"github.com/bookswap/bookswap-api/internal/services"
	"github.com/bookswap/bookswap-api/internal/utils"
)

type TradeHandler struct {
	tradeService *services.TradeService
}

func NewTradeHandler(tradeService *services.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// POST /trades
func (h *TradeHandler) InitiateTrade(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.InitiateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	trade, err := h.tradeService.Initiate(requesterID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTradeInitiated),
		"trade":   trade,
	})
}

// GET /trades
func (h *TradeHandler) GetMyTrades(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	trades, err := h.tradeService.ListForUser(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"trades": trades,
	})
}

// GET /trades/:id
func (h *TradeHandler) GetTrade(c *gin.Context) {
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "Invalid trade ID", nil)
		return
	}

	trade, err := h.tradeService.Get(tradeID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"trade": trade,
	})
}

// PUT /trades/:id
func (h *TradeHandler) RespondToTrade(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "Invalid trade ID", nil)
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RespondTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	trade, err := h.tradeService.Respond(tradeID, ownerID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTradeResponded),
		"trade":   trade,
	})
}

// PUT /trades/:id/counter
func (h *TradeHandler) RespondToCounter(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "Invalid trade ID", nil)
		return
	}

	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CounterResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	trade, err := h.tradeService.RespondToCounter(tradeID, requesterID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTradeResponded),
		"trade":   trade,
	})
}

// DELETE /trades/:id
func (h *TradeHandler) CancelTrade(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "Invalid trade ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	trade, err := h.tradeService.Cancel(tradeID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTradeCancelled),
		"trade":   trade,
	})
}

// PUT /trades/:id/complete
func (h *TradeHandler) CompleteTrade(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "Invalid trade ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	trade, err := h.tradeService.Complete(tradeID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTradeCompleted),
		"trade":   trade,
	})
}
