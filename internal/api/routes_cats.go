package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catcatalog/internal/handlers"
)

func registerCatRoutes(router gin.IRouter, handler *handlers.CatHandler) {
	if router == nil || handler == nil {
		return
	}

	cats := router.Group("/cats")
	{
		cats.GET("", handler.List)
		cats.POST("", handler.Create)
		cats.GET("/:id", handler.Get)
		cats.PUT("/:id", handler.Update)
		cats.DELETE("/:id", handler.Delete)
	}
}
