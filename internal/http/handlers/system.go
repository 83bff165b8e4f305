package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "shiptix/internal/config"
	intdb "shiptix/internal/db"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "shiptix backend berjalan", "data_source": h.DataSource})
}

func (h *Handler) DBCheck(c *gin.Context) {
	if h.DataSource != "mysql" {
		c.JSON(http.StatusOK, gin.H{"message": "data source in-memory aktif", "data_source": h.DataSource})
		return
	}
	db := intconfig.DB
	if db == nil {
		respondError(c, http.StatusServiceUnavailable, "data_source_unavailable", "database belum terhubung", nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if !intdb.HasTable(ctx, db, "schedules") {
		respondError(c, http.StatusServiceUnavailable, "data_source_unavailable", "tabel schedules belum ada", nil)
		return
	}
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schedules").Scan(&count); err != nil {
		respondError(c, http.StatusServiceUnavailable, "data_source_unavailable", "gagal query ke database: "+err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "schedules_in_db": count})
}

func (h *Handler) Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path, "handler": rt.Handler})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
