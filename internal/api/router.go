package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/config"
	adminCategory "github.com/rgriss/aimanifesto/internal/api/v1/admin/category"
	adminTool "github.com/rgriss/aimanifesto/internal/api/v1/admin/tool"
	adminToolRequest "github.com/rgriss/aimanifesto/internal/api/v1/admin/toolrequest"
	adminUpload "github.com/rgriss/aimanifesto/internal/api/v1/admin/upload"
	adminUser "github.com/rgriss/aimanifesto/internal/api/v1/admin/user"
	"github.com/rgriss/aimanifesto/internal/api/v1/auth"
	"github.com/rgriss/aimanifesto/internal/api/v1/categories"
	externalIntelligence "github.com/rgriss/aimanifesto/internal/api/v1/external/intelligence"
	"github.com/rgriss/aimanifesto/internal/api/v1/toolrequest"
	"github.com/rgriss/aimanifesto/internal/api/v1/tools"
	userRoutes "github.com/rgriss/aimanifesto/internal/api/v1/user"
	"github.com/rgriss/aimanifesto/internal/middleware"
	"github.com/rgriss/aimanifesto/internal/services"
)

// NewRouter builds the HTTP surface. Database and Redis connections are
// expected to be established by the caller before any request arrives.
func NewRouter(cfg *config.Config, validator *services.ValidationService, uploader services.LogoUploader) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		// Public catalog
		tools.RegisterRoutes(v1)
		categories.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			toolrequest.RegisterRoutes(authorized, validator)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminUser.RegisterRoutes(admin)
			adminTool.RegisterRoutes(admin)
			adminCategory.RegisterRoutes(admin)
			adminToolRequest.RegisterRoutes(admin)
			adminUpload.RegisterRoutes(admin, uploader)
		}

		external := v1.Group("/external")
		external.Use(middleware.ExternalTokenMiddleware(cfg.ExternalAPIToken))
		{
			externalIntelligence.RegisterRoutes(external)
		}
	}

	return router
}
