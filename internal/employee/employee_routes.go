package employee

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the employee endpoints. createMiddleware runs in
// front of POST /add-employee only.
func RegisterRoutes(
	r gin.IRouter,
	handler *Handler,
	createMiddleware ...gin.HandlerFunc,
) {
	r.POST("/add-employee", append(createMiddleware, handler.Create)...)
	r.GET("/edit-employee/:id", handler.EditPage)

	employees := r.Group("/api/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetByID)
		employees.PUT("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)
	}
}
