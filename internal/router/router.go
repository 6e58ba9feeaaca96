package router

import (
	"urlguard/internal/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	r.POST("check", h.CreateCheck)
	r.GET("check/:id", h.GetStatusCheck)
	r.GET("healthz", h.Healthz)
	r.GET("metrics", gin.WrapH(promhttp.Handler()))

	return r
}
