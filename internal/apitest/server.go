// Package apitest runs an in-memory rendition of the suite API for
// tests. It answers the same routes, envelopes, and error payloads as
// the real backend so client and controller tests can run end to end
// without a network.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"console/internal/resources"
	"console/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server holds the mutable fixture state behind the routes.
type Server struct {
	Token string

	// Latency delays every authorized response, for tests that need
	// a request to still be in flight when the next one starts.
	Latency time.Duration

	mu        sync.Mutex
	contracts []resources.Contract
	accounts  []resources.Account
	drivers   []resources.Driver
	vehicles  []resources.Vehicle
	tasks     []resources.Task
	decisions []dispatchDecision
}

type dispatchDecision struct {
	ID         string  `json:"id"`
	Summary    string  `json:"summary"`
	VehicleID  string  `json:"vehicle_id"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
}

// NewServer seeds a fixture set large enough to exercise paging.
func NewServer(token string) *Server {
	s := &Server{Token: token}
	s.seed()
	return s
}

// Start mounts the router on an httptest server. Callers own Close.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.Router())
}

// Router builds the gin engine with the same middleware chain the real
// backend uses.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestID(), requestLogger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "route tidak ditemukan"})
	})

	api := r.Group("/api")
	api.Use(s.requireBearer())
	{
		contracts := api.Group("/crm/contracts")
		contracts.GET("", s.listContracts)
		contracts.POST("", s.createContract)
		contracts.PUT("/:id", s.updateContract)
		contracts.DELETE("/:id", s.deleteContract)

		api.GET("/crm/accounts", s.listAccounts)

		drivers := api.Group("/tms/drivers")
		drivers.GET("", s.listDrivers)
		drivers.POST("", s.createDriver)
		drivers.PUT("/:id", s.updateDriver)
		drivers.DELETE("/:id", s.deleteDriver)

		// legacy endpoint, bare array without envelope
		api.GET("/vehicles", s.listVehiclesLegacy)

		tasks := api.Group("/pm/tasks")
		tasks.GET("", s.listTasks)
		tasks.PATCH("/:id", s.patchTask)

		dispatch := api.Group("/tms/dispatch/dashboard")
		dispatch.GET("", s.dispatchDashboard)
		dispatch.PUT("/decisions/:id/approve", s.decide("APPROVED"))
		dispatch.PUT("/decisions/:id/reject", s.decide("REJECTED"))
	}

	return r
}

func (s *Server) requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+s.Token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "token tidak valid"})
			return
		}
		if s.Latency > 0 {
			time.Sleep(s.Latency)
		}
		c.Next()
	}
}

func (s *Server) nextID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

const requestIDKey = "request_id"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid := c.GetString(requestIDKey)
		utils.LogEvent(rid, "apitest", c.Request.Method,
			fmt.Sprintf("%s status=%d latency=%s", c.Request.URL.Path, c.Writer.Status(), time.Since(start)))
	}
}
