package relay

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/Erunixz/thru.ai/pkg/hub"
	"github.com/Erunixz/thru.ai/pkg/order"
)

// Server is the kitchen display server. It accepts order pushes from the
// lane, keeps them in memory, and fans out live updates to websocket
// subscribers.
type Server struct {
	app    *fiber.App
	store  *Store
	orders *hub.Hub
	logger *slog.Logger
}

// NewServer creates a display server.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:  NewStore(),
		orders: hub.New("orders", logger),
		logger: logger.With("component", "relay.server"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Order Display",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Post("/order", s.handlePushOrder)
	api.Get("/orders", s.handleListOrders)
	api.Get("/orders/latest", s.handleLatestOrder)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "orders": s.store.Len()})
	})

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/orders", websocket.New(s.handleOrdersWS))

	s.app = app
	return s
}

// Listen starts the server on addr and blocks.
func (s *Server) Listen(addr string) error {
	go s.orders.Run()
	s.logger.Info("display server listening", "addr", addr)
	return s.app.Listen(addr)
}

// App exposes the fiber app for tests and custom listeners.
func (s *Server) App() *fiber.App {
	return s.app
}

// Store exposes the order store.
func (s *Server) Store() *Store {
	return s.store
}

// Hub exposes the order broadcast hub. Run must be started by the
// caller when the server is not started through Listen.
func (s *Server) Hub() *hub.Hub {
	return s.orders
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handlePushOrder accepts one order from the lane.
func (s *Server) handlePushOrder(c *fiber.Ctx) error {
	var o order.Order
	if err := c.BodyParser(&o); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid order payload",
		})
	}
	o.Normalize()
	if err := o.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rec := s.store.Add(o)

	s.logger.Info("order received",
		"order_id", rec.ID,
		"items", rec.Order.ItemCount(),
		"total", rec.Order.Total,
		"status", rec.Order.Status,
	)

	if err := s.orders.BroadcastJSON(rec); err != nil {
		s.logger.Warn("broadcast failed", "error", err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"order_id": rec.ID,
	})
}

// handleListOrders returns every received order.
func (s *Server) handleListOrders(c *fiber.Ctx) error {
	return c.JSON(s.store.All())
}

// handleLatestOrder returns the most recent order.
func (s *Server) handleLatestOrder(c *fiber.Ctx) error {
	rec, ok := s.store.Latest()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No orders yet",
		})
	}
	return c.JSON(rec)
}

// handleOrdersWS streams live order updates to one subscriber.
func (s *Server) handleOrdersWS(c *websocket.Conn) {
	client := hub.NewClient(s.orders, c)
	client.Run()
}
