package router

import (
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/config"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/handler"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/infra"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/middleware"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/repository"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	events := infra.NewEvents(rdb)
	loc := cfg.Location()

	// ── Repositories ─────────────────────────────────────────────────────────
	saborRepo := repository.NewSaborRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	configRepo := repository.NewConfiguracionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	saboresSvc := service.NewSaboresService(saborRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, saborRepo, rdb, events)
	configSvc := service.NewConfiguracionService(configRepo)
	cajaSvc := service.NewCajaService(cajaRepo, loc, events, dispatcher)
	clientesSvc := service.NewClientesService(clienteRepo, ventaRepo, cajaSvc, events, loc)
	ventasSvc := service.NewVentasService(ventaRepo, saborRepo, inventarioSvc, clientesSvc, cajaSvc, configSvc, events)

	// ── Handlers ─────────────────────────────────────────────────────────────
	saboresH := handler.NewSaboresHandler(saboresSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	clientesH := handler.NewClientesHandler(clientesSvc)
	ventasH := handler.NewVentasHandler(ventasSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	configH := handler.NewConfiguracionHandler(configSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		sabores := v1.Group("/sabores")
		{
			sabores.POST("", saboresH.Crear)
			sabores.GET("", saboresH.Listar)
			sabores.GET("/:id", saboresH.Obtener)
			sabores.PUT("/:id", saboresH.Actualizar)
			sabores.DELETE("/:id", saboresH.Desactivar)
			sabores.POST("/:id/reactivar", saboresH.Reactivar)
			sabores.GET("/:id/lotes", inventarioH.ListarLotesPorSabor)
		}

		v1.POST("/lotes", inventarioH.RegistrarLote)
		v1.GET("/lotes", inventarioH.ListarLotes)
		v1.GET("/inventario", inventarioH.ObtenerResumen)
		v1.GET("/inventario/:saborId", inventarioH.ObtenerPorSabor)

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", ventasH.ProcesarVenta)
			ventas.GET("", ventasH.ListarVentasDelDia)
			ventas.GET("/:id", ventasH.ObtenerVenta)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/deudores", clientesH.ListarDeudores)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
			clientes.POST("/:id/abonos", clientesH.RegistrarAbono)
			clientes.PUT("/:id/promesa", clientesH.ActualizarFechaPromesa)
			clientes.GET("/:id/estado-cuenta", clientesH.EstadoDeCuenta)
			clientes.GET("/:id/ventas", ventasH.ListarPorCliente)
		}

		caja := v1.Group("/caja")
		{
			caja.GET("", cajaH.ObtenerDia)
			caja.POST("/corte", cajaH.RealizarCorte)
			caja.GET("/cortes", cajaH.HistorialCortes)
		}

		v1.GET("/configuracion", configH.Obtener)
		v1.PUT("/configuracion", configH.Actualizar)
	}

	return r
}
