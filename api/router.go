package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nugie07/armos-cleaning/cleaning"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the REST surface. Handlers never touch the databases
// directly; everything goes through the service.
func NewRouter(svc *cleaning.Service, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(correlationMiddleware())
	r.Use(errorLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", HealthHandler())
	r.POST("/compare-data", CompareHandler(svc))
	r.POST("/create-payload/:do_number", CreatePayloadHandler(svc))
	r.GET("/payload-results", ListPayloadsHandler(svc))
	r.GET("/payload-result/:do_number", GetPayloadHandler(svc))

	return r
}

// correlationMiddleware attaches a correlation id to every request,
// reusing the caller's when provided.
func correlationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Writer.Header().Set("x-correlation-id", cid)
		c.Next()
	}
}

// errorLogger logs only requests that accumulated errors.
func errorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}
