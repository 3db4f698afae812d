package route

import (
	"cafe-api/auth"
	"cafe-api/controller"

	"github.com/gin-gonic/gin"
)

func CafeRoutes(router *gin.Engine, cafes *controller.CafeController, authz *auth.Authorizer) {
	router.GET("/", cafes.Home)
	router.GET("/healthz", cafes.Health)

	router.GET("/all", cafes.GetAllCafes)
	router.GET("/search", cafes.SearchCafes)
	router.GET("/random", cafes.GetRandomCafe)
	router.GET("/cafe/:id", cafes.GetCafeByID)
	router.GET("/export", cafes.ExportCafes)

	router.POST("/add", cafes.AddCafe)
	router.PATCH("/update-price/:id", cafes.UpdatePrice)

	admin := router.Group("")
	admin.Use(authz.RequireAdmin())
	{
		admin.DELETE("/delete_cafe/:id", cafes.DeleteCafe)
		admin.POST("/import", cafes.ImportCafes)
	}

	router.POST("/auth/token", authz.IssueToken)
}
