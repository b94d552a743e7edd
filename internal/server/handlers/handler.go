package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/service/kitchen"
	"github.com/mamadbah2/kitchen/internal/service/notify"
)

// Exporter copies kitchen lists to a spreadsheet.
type Exporter interface {
	ExportShoppingList(ctx context.Context, items []models.ShoppingItem) (int, error)
	ExportMealPlan(ctx context.Context, plan []models.MealPlanDay) (int, error)
}

// Notifier is the notification boundary exposed over HTTP.
type Notifier interface {
	StartSession() notify.Session
	CheckExpiring(ctx context.Context, inventory []models.Ingredient) (bool, error)
}

// KitchenHandler adapts the kitchen service to HTTP.
type KitchenHandler struct {
	kitchen  *kitchen.Service
	exporter Exporter
	notifier Notifier
	logger   *zap.Logger
}

// NewKitchenHandler constructs the HTTP handler adapter. exporter and notifier may be nil
// when the matching feature is not configured.
func NewKitchenHandler(svc *kitchen.Service, exporter Exporter, notifier Notifier, logger *zap.Logger) *KitchenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KitchenHandler{kitchen: svc, exporter: exporter, notifier: notifier, logger: logger}
}

// Status reports the request state of every generation operation.
func (h *KitchenHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.kitchen.Status())
}

// writeError maps domain errors onto HTTP statuses.
func (h *KitchenHandler) writeError(c *gin.Context, err error) {
	var (
		pre      *models.PreconditionError
		parseErr *models.ReceiptParseError
		genErr   *models.GenerationError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &pre):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &parseErr), errors.As(err, &genErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Warn("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
