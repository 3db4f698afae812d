package route

import (
	"embed"
	"html/template"
	"time"

	"cafe-api/auth"
	"cafe-api/controller"
	"cafe-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templates embed.FS

type Options struct {
	AllowedOrigins []string
}

// NewRouter builds the engine with middleware, the landing page template and
// all cafe routes.
func NewRouter(opts Options, cafes *controller.CafeController, authz *auth.Authorizer) *gin.Engine {
	router := gin.New()
	router.Use(utils.RequestID(), gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	CafeRoutes(router, cafes, authz)
	return router
}
