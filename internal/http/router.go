package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "shiptix/internal/config"
	h "shiptix/internal/http/handlers"
	"shiptix/internal/http/middleware"
	"shiptix/internal/utils"
)

func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", hd.Routes)

		api.GET("/ports", hd.ListPorts)

		// Search pipeline (per visitor session)
		sess := api.Group("", middleware.Session(int(env.SessionTTL.Seconds()), env.GinMode == gin.ReleaseMode))
		search := sess.Group("/search")
		search.POST("", hd.Search)
		search.GET("", hd.GetSearch)
		search.POST("/passengers", hd.AdjustPassengers)
		search.GET("/results", hd.Results)
		search.POST("/select", hd.Select)
		search.GET("/selected", hd.Selected)
		sess.DELETE("/session", hd.ResetSession)

		// Bookings
		bookings := sess.Group("/bookings")
		bookings.POST("", hd.CreateBooking)
		bookings.GET("", hd.MyBookings)
		bookings.GET("/:code", hd.GetBooking)
		bookings.GET("/:code/e-ticket", hd.ETicket)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", hd.Login)
		auth.GET("/me", middleware.RequireAuth(hd.Auth), hd.Me)

		// Admin master data
		admin := api.Group("/admin", middleware.RequireAuth(hd.Auth), middleware.RequireRoles("admin", "owner"))
		mountAdmin(admin, hd)
	}

	h.SetRouter(r)
	return r
}

func mountAdmin(g *gin.RouterGroup, hd *h.Handler) {
	ports := g.Group("/ports")
	ports.GET("", hd.AdminListPorts)
	ports.POST("", hd.CreatePort)
	ports.PUT("/:id", hd.UpdatePort)
	ports.DELETE("/:id", hd.DeletePort)

	operators := g.Group("/operators")
	operators.GET("", hd.AdminListOperators)
	operators.POST("", hd.CreateOperator)
	operators.PUT("/:id", hd.UpdateOperator)
	operators.DELETE("/:id", hd.DeleteOperator)

	ships := g.Group("/ships")
	ships.GET("", hd.AdminListShips)
	ships.POST("", hd.CreateShip)
	ships.PUT("/:id", hd.UpdateShip)
	ships.DELETE("/:id", hd.DeleteShip)

	schedules := g.Group("/schedules")
	schedules.GET("", hd.AdminListSchedules)
	schedules.POST("", hd.CreateSchedule)
	schedules.PUT("/:id", hd.UpdateSchedule)
	schedules.DELETE("/:id", hd.DeleteSchedule)

	bookings := g.Group("/bookings")
	bookings.GET("", hd.AdminListBookings)
	bookings.PUT("/:id/status", hd.UpdateBookingStatus)
	bookings.DELETE("/:id", hd.DeleteBooking)

	g.GET("/reports/sales", hd.SalesReport)
	g.GET("/export", hd.Export)
}
