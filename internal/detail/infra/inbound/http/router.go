package http

import "github.com/gin-gonic/gin"

func RegisterBatchRoutes(r *gin.Engine, handler *BatchHandler) {
	r.POST("/batches", handler.PostBatch)
	r.GET("/health", handler.Health)
}
