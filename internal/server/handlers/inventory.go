package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

const maxReceiptBytes = 10 << 20

type amountView struct {
	Magnitude string `json:"magnitude"`
	Unit      string `json:"unit,omitempty"`
}

type ingredientView struct {
	models.Ingredient
	Amount *amountView `json:"amount,omitempty"`
}

func ingredientViews(items []models.Ingredient) []ingredientView {
	out := make([]ingredientView, 0, len(items))
	for _, item := range items {
		view := ingredientView{Ingredient: item}
		if q, ok := item.ParsedQuantity(); ok {
			view.Amount = &amountView{Magnitude: q.Magnitude.String(), Unit: q.Unit}
		}
		out = append(out, view)
	}
	return out
}

// ListInventory returns the stock, optionally filtered by ?search=.
// Quantities with a leading number also carry their structured amount.
func (h *KitchenHandler) ListInventory(c *gin.Context) {
	if term, ok := c.GetQuery("search"); ok {
		c.JSON(http.StatusOK, ingredientViews(h.kitchen.SearchInventory(term)))
		return
	}
	c.JSON(http.StatusOK, ingredientViews(h.kitchen.Inventory()))
}

// ScanReceipt accepts a receipt image as multipart field "image" or as the raw body.
func (h *KitchenHandler) ScanReceipt(c *gin.Context) {
	image, mimeType, err := readImage(c)
	if err != nil {
		h.logger.Warn("invalid receipt upload", zap.Error(err))
		badRequest(c, "a receipt image is required")
		return
	}

	items, err := h.kitchen.ScanReceipt(c.Request.Context(), image, mimeType)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, items)
}

// DeleteIngredient removes one stock item.
func (h *KitchenHandler) DeleteIngredient(c *gin.Context) {
	if !h.kitchen.RemoveIngredient(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ExpiringSoon lists the items inside the expiry alert window.
func (h *KitchenHandler) ExpiringSoon(c *gin.Context) {
	c.JSON(http.StatusOK, h.kitchen.ExpiringSoon())
}

// Dashboard returns the overview figures.
func (h *KitchenHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.kitchen.Dashboard())
}

func readImage(c *gin.Context) ([]byte, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxReceiptBytes)

	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return data, detectMIME(fh.Header.Get("Content-Type"), data), nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", io.ErrUnexpectedEOF
	}
	return data, detectMIME(c.ContentType(), data), nil
}

// detectMIME trusts a declared image type and sniffs anything else.
func detectMIME(declared string, data []byte) string {
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	return http.DetectContentType(data)
}
