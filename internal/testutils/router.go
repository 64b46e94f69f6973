package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/jianshanacademy/camp-portal/internal/api/routes"
	"gorm.io/gorm"
)

func SetupRouter(gormDB *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, gormDB)
	return r
}
