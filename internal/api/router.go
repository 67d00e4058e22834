package api

import "github.com/gin-gonic/gin"

// NewRouter wires the read-only endpoints onto a gin engine.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.GET("/prices", handler.GetPrices)
	router.GET("/trades", handler.GetTrades)
	router.GET("/status", handler.GetStatus)
	router.GET("/conversions", handler.GetConversions)
	router.GET("/stakes", handler.GetStakes)

	return router
}
