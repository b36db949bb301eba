package server

import (
	"sparemart/internal/handler"
	authmw "sparemart/internal/middleware"
	"sparemart/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	jwtSecret       string
}

func NewServer(checkoutService service.CheckoutService, jwtSecret string) *Server {
	e := echo.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		jwtSecret:       jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	checkout := api.Group("/checkout", authmw.AuthMiddleware(s.jwtSecret))
	checkout.POST("/:id/finalize", s.checkoutHandler.FinalizeCOD)

	orders := api.Group("/orders", authmw.AuthMiddleware(s.jwtSecret))
	orders.GET("/:id", s.checkoutHandler.GetOrder)

	// -------- gateway callback --------
	api.POST("/payment/callback", s.checkoutHandler.FinalizeOnline)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
