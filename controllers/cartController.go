package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/amexan-store/cart"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func cartStatus(err error) int {
	switch {
	case errors.Is(err, cart.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrOutOfStock), errors.Is(err, cart.ErrExceedsStock):
		return http.StatusConflict
	case errors.Is(err, cart.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sendCartResult(ctx *gin.Context, result cart.Result) {
	if !result.Success {
		sendJSONResponse(ctx, cartStatus(result.Err), result)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, result)
}

type cartMutation func(s *cart.Service, ctx *gin.Context, userID, productID uint) cart.Result

func (h *Handlers) mutateCart(op cartMutation) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := requireUserID(ctx)
		if !ok {
			return
		}
		productID, ok := parseID(ctx, "productId")
		if !ok {
			return
		}
		sendCartResult(ctx, op(h.Cart, ctx, userID, productID))
	}
}

func (h *Handlers) AddToCart() gin.HandlerFunc {
	return h.mutateCart(func(s *cart.Service, ctx *gin.Context, userID, productID uint) cart.Result {
		return s.Add(ctx.Request.Context(), userID, productID)
	})
}

func (h *Handlers) RemoveFromCart() gin.HandlerFunc {
	return h.mutateCart(func(s *cart.Service, ctx *gin.Context, userID, productID uint) cart.Result {
		return s.Remove(ctx.Request.Context(), userID, productID)
	})
}

func (h *Handlers) IncreaseCartItem() gin.HandlerFunc {
	return h.mutateCart(func(s *cart.Service, ctx *gin.Context, userID, productID uint) cart.Result {
		return s.Increase(ctx.Request.Context(), userID, productID)
	})
}

func (h *Handlers) DecreaseCartItem() gin.HandlerFunc {
	return h.mutateCart(func(s *cart.Service, ctx *gin.Context, userID, productID uint) cart.Result {
		return s.Decrease(ctx.Request.Context(), userID, productID)
	})
}

// GetCart returns the caller's lines priced at current product prices.
func (h *Handlers) GetCart(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	lines, err := h.Cart.Lines(ctx.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to load cart", zap.Uint("user_id", userID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if lines == nil {
		lines = []cart.PricedLine{}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":      lines,
		"itemCount":  cart.CountItems(lines),
		"totalPrice": cart.SumPrice(lines),
	})
}
