package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/application"
	"github.com/davicafu/detailstream/internal/detail/domain"
	"github.com/davicafu/detailstream/pkg/utils"
)

type BatchRelay interface {
	ExtractAndDispatch(ctx context.Context, batch domain.Batch) (application.Result, error)
}

// BatchHandler expone el relay por HTTP para pruebas locales y reenvíos.
type BatchHandler struct {
	relay BatchRelay
	log   *zap.Logger
}

func NewBatchHandler(relay BatchRelay, log *zap.Logger) *BatchHandler {
	return &BatchHandler{relay: relay, log: log}
}

// PostBatch endpoint POST /batches. Recibe un events.DynamoDBEvent.
func (h *BatchHandler) PostBatch(c *gin.Context) {
	var batch events.DynamoDBEvent
	if err := c.ShouldBindJSON(&batch); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	res, err := h.relay.ExtractAndDispatch(c.Request.Context(), batch)
	if err != nil {
		if errors.Is(err, domain.ErrMissingEntityKey) {
			utils.SendUnprocessable(c, err.Error())
			return
		}
		h.log.Error("❌ Fallo entregando lote recibido por HTTP", zap.Error(err))
		utils.SendBadGateway(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, res)
}

// Health endpoint GET /health
func (h *BatchHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
