package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfarfano/registro-horas/config"
	httpapi "github.com/sfarfano/registro-horas/internal/api/http"
	apimw "github.com/sfarfano/registro-horas/internal/api/http/middleware"
	"github.com/sfarfano/registro-horas/internal/auth"
	authhttp "github.com/sfarfano/registro-horas/internal/auth/http"
	authmw "github.com/sfarfano/registro-horas/internal/auth/middleware"
	authsvc "github.com/sfarfano/registro-horas/internal/auth/service"
	"github.com/sfarfano/registro-horas/internal/costcenters"
	"github.com/sfarfano/registro-horas/internal/payrates"
	reporthttp "github.com/sfarfano/registro-horas/internal/reports/http"
	"github.com/sfarfano/registro-horas/internal/roster"
	"github.com/sfarfano/registro-horas/internal/session"
	entryhttp "github.com/sfarfano/registro-horas/internal/timesheet/http"
	"github.com/sfarfano/registro-horas/internal/timesheet/service"
	"github.com/sfarfano/registro-horas/internal/timesheet/store"
)

type RouterDeps struct {
	Config      *config.Config
	ServiceName string
	Store       store.Store
	DB          *pgxpool.Pool
	Sessions    *session.Store
	Roster      roster.Provider
	CostCenters costcenters.Provider
	PayRates    payrates.Provider
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(apimw.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dep.Config.Store.Backend, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	authHandler := authhttp.New(
		authsvc.New(dep.Roster, dep.Config.App.AdminAlias),
		dep.Sessions,
		auth.NewLoginLimiter(1, 5),
	)
	authHandler.Register(api.Group("/auth"), dep.Sessions)

	entrySvc := service.New(dep.Store, dep.Roster, dep.CostCenters, dep.PayRates, service.Options{
		RevalidateOnEdit: dep.Config.App.RevalidateOnEdit,
	})

	authed := api.Group("")
	authed.Use(authmw.WithSession(dep.Sessions))

	authed.GET("/cost-centers", func(c *gin.Context) {
		active, err := dep.CostCenters.Active(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "cost_centers": active})
	})

	entryhttp.New(entrySvc).Register(authed.Group("/entries"))

	adminGroup := authed.Group("/reports")
	adminGroup.Use(authmw.AdminOnly())
	reporthttp.New(dep.Store).Register(adminGroup)

	return r
}
