package controller

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// Health 健康检查
// @Summary Health check
// @Description Reports reachability of the database and Redis.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func (ctl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)}
	code := 200

	sqlDB, err := ctl.DB.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "down"
		status["status"] = "degraded"
		code = 503
	} else {
		status["database"] = "up"
	}

	if ctl.Redis.Ping(ctx).Err() != nil {
		status["redis"] = "down"
		status["status"] = "degraded"
		code = 503
	} else {
		status["redis"] = "up"
	}

	c.JSON(code, status)
}
