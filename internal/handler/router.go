package handler

import (
	"time"

	"go-ferreteria-api/internal/middleware"
	"go-ferreteria-api/internal/service"
	"go-ferreteria-api/internal/ws"
	"go-ferreteria-api/pkg/logger"
	"go-ferreteria-api/pkg/metrics"
	pkgredis "go-ferreteria-api/pkg/redis"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const (
	AppName                 = "Ferreteria API"
	DefaultPaymentRateLimit = "120-M"
)

// Services groups the business layer the router exposes.
type Services struct {
	Products  service.ProductService
	Customers service.CustomerService
	Branches  service.BranchService
	Orders    service.OrderService
	Payments  service.PaymentService
	Currency  service.CurrencyService
	Catalog   service.CatalogService
}

// Options carries the cross-cutting pieces. Zero values disable the optional
// ones: no hub means no /ws, no store means Idempotency-Key is ignored and an
// empty secret leaves rate refresh open.
type Options struct {
	Version          string
	Logger           *logger.Logger
	Metrics          *metrics.Metrics
	Hub              *ws.Hub
	IdempotencyStore pkgredis.IdempotencyStore
	IdempotencyTTL   time.Duration
	OperatorSecret   []byte
	PaymentRateLimit string
}

func NewApp(svc Services, opts Options) (*fiber.App, error) {
	logg := opts.Logger

	rate := opts.PaymentRateLimit
	if rate == "" {
		rate = DefaultPaymentRateLimit
	}
	paymentLimiter, err := middleware.RateLimit(rate, logg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      AppName,
		ErrorHandler: ErrorHandler(logg),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics(opts.Metrics))
	app.Use(middleware.RequestLogger(logg))

	idempotent := middleware.Idempotency(opts.IdempotencyStore, opts.IdempotencyTTL, logg)

	healthHandler := NewHealthHandler(opts.Version)
	productHandler := NewProductHandler(svc.Products)
	customerHandler := NewCustomerHandler(svc.Customers, svc.Branches)
	orderHandler := NewOrderHandler(svc.Orders)
	paymentHandler := NewPaymentHandler(svc.Payments)
	currencyHandler := NewCurrencyHandler(svc.Currency, svc.Catalog)

	app.Get("/health", healthHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))

	// Catalogo
	app.Get("/productos", productHandler.GetProducts)
	app.Post("/productos", productHandler.CreateProduct)
	app.Get("/productos/:id", productHandler.GetProduct)
	app.Put("/productos/:id/stock", productHandler.UpdateStock)
	app.Get("/categorias", productHandler.GetCategories)
	app.Post("/categorias", productHandler.CreateCategory)
	app.Get("/catalogo", currencyHandler.GetCatalog)

	app.Get("/clientes", customerHandler.GetCustomers)
	app.Post("/clientes", customerHandler.CreateCustomer)
	app.Get("/sucursales", customerHandler.GetBranches)
	app.Post("/sucursales", customerHandler.CreateBranch)

	// Pedidos entre sucursales
	orders := app.Group("/pedidos-sucursal")
	orders.Get("/", orderHandler.GetOrders)
	orders.Post("/", idempotent, orderHandler.CreateOrder)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Put("/:id/aprobar", orderHandler.ApproveOrder)
	orders.Put("/:id/enviar", orderHandler.ShipOrder)
	orders.Put("/:id/recibir", orderHandler.ReceiveOrder)
	orders.Put("/:id/cancelar", orderHandler.CancelOrder)

	// WebPay
	webpay := app.Group("/webpay")
	webpay.Post("/iniciar", paymentLimiter, idempotent, paymentHandler.StartTransaction)
	webpay.Post("/confirmar", paymentLimiter, paymentHandler.ConfirmTransaction)
	webpay.Get("/transacciones", paymentHandler.GetTransactions)

	// Divisas
	divisas := app.Group("/divisas")
	divisas.Post("/convertir", currencyHandler.Convert)
	divisas.Get("/tasas", currencyHandler.GetRates)
	divisas.Post("/actualizar-tasas", middleware.RequireOperator(opts.OperatorSecret), currencyHandler.RefreshRates)

	if opts.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(opts.Hub.Serve))
	}

	return app, nil
}
