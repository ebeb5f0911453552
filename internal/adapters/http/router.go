package http

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"github.com/xlxfoxxlx/carrierd/internal/logger"
)

// ginLogger returns a gin.HandlerFunc (middleware) that logs requests using our observability logger
func ginLogger() gin.HandlerFunc {
	logger := logger.New("gin-http", "info")

	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		// Get status code and other details
		statusCode := c.Writer.Status()
		method := c.Request.Method
		clientIP := c.ClientIP()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		// Build log fields
		fields := []interface{}{
			"status", statusCode,
			"method", method,
			"path", path,
			"ip", clientIP,
			"latency_ms", latency.Milliseconds(),
		}

		if query != "" {
			fields = append(fields, "query", query)
		}

		if errorMessage != "" {
			fields = append(fields, "error", errorMessage)
		}

		// Log based on status code
		if statusCode >= 500 {
			logger.Errorw("HTTP request error", fields...)
		} else if statusCode >= 400 {
			logger.Warnw("HTTP request warning", fields...)
		} else {
			logger.Infow("HTTP request", fields...)
		}
	}
}

// ginRecovery returns a gin.HandlerFunc (middleware) that recovers from panics and logs using our observability logger
func ginRecovery() gin.HandlerFunc {
	logger := logger.New("gin-recovery", "info")

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// Get the full stack trace
				stack := debug.Stack()

				// Log the panic with full stack trace
				logger.Errorw("Panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"ip", c.ClientIP(),
					"stack", string(stack),
				)

				// Also print to stderr for immediate visibility
				fmt.Printf("\n=== PANIC RECOVERED ===\n")
				fmt.Printf("Error: %v\n", err)
				fmt.Printf("Path: %s\n", c.Request.URL.Path)
				fmt.Printf("Method: %s\n", c.Request.Method)
				fmt.Printf("Client IP: %s\n", c.ClientIP())
				fmt.Printf("\nStack Trace:\n%s\n", string(stack))
				fmt.Printf("======================\n\n")

				// Abort with 500 status
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}

// SetupRouter creates and configures the HTTP router. An empty metricsPath
// disables the metrics endpoint.
func SetupRouter(service ports.CarrierTextService, sink ports.TelephonyStateSink, metricsPath string) *gin.Engine {
	// Set Gin to release mode to disable debug logging
	gin.SetMode(gin.ReleaseMode)

	// Create router without default middleware
	router := gin.New()

	// Add custom recovery middleware (must be first)
	router.Use(ginRecovery())

	// Add custom logger middleware
	router.Use(ginLogger())

	handler := NewHandler(service, sink)

	// Carrier text API
	v1 := router.Group("/carrier-text/v1")
	{
		v1.GET("/status", handler.GetStatus)
		v1.POST("/refresh", handler.PostRefresh)
	}

	// Management API (telephony state feeds and provisioning)
	api := router.Group("/api/v1")
	{
		telephony := api.Group("/telephony")
		{
			telephony.PUT("/subscriptions", handler.PutSubscriptions)
			telephony.PUT("/sim-states", handler.PutSimState)
			telephony.PUT("/service-states", handler.PutServiceState)
			telephony.PUT("/five-g", handler.PutFiveGState)
			telephony.PUT("/connectivity", handler.PutConnectivity)
			telephony.PUT("/airplane-mode", handler.PutAirplaneMode)
			telephony.PUT("/device-state", handler.PutDeviceState)
			telephony.PUT("/network-name", handler.PutNetworkName)
		}

		api.GET("/carrier-names", handler.ListCarrierNames)
		api.PUT("/carrier-names", handler.PutCarrierName)
		api.DELETE("/carrier-names/:name", handler.DeleteCarrierName)

		api.GET("/history", handler.GetHistory)
	}

	// Health check
	router.GET("/health", handler.HealthCheck)

	// Prometheus metrics
	if metricsPath != "" {
		router.GET(metricsPath, gin.WrapH(logger.MetricsHandler()))
	}

	return router
}
