package server

import (
	"candy-shop/internal/handler"
	authmw "candy-shop/internal/middleware"
	"candy-shop/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo          *echo.Echo
	jwtSecret     []byte
	userHandler   *handler.UserHandler
	shopHandler   *handler.ShopHandler
	reportHandler *handler.ReportHandler
}

func NewServer(
	userService service.UserService,
	shopService service.ShopService,
	reportService service.ReportService,
	jwtSecret []byte,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:          e,
		jwtSecret:     jwtSecret,
		userHandler:   handler.NewUserHandler(userService),
		shopHandler:   handler.NewShopHandler(shopService),
		reportHandler: handler.NewReportHandler(reportService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/users/register", s.userHandler.Register)
	api.POST("/users/login", s.userHandler.Login)
	api.GET("/candies", s.shopHandler.ListCandies)

	// -------- authenticated --------
	auth := api.Group("", authmw.JWTAuth(s.jwtSecret))
	auth.POST("/users/password", s.userHandler.ChangePassword)
	auth.GET("/cart", s.shopHandler.GetCart)
	auth.POST("/cart/items", s.shopHandler.AddItem)
	auth.POST("/checkout", s.shopHandler.Checkout)
	auth.POST("/refund", s.shopHandler.Refund)
	auth.GET("/orders", s.shopHandler.ListOrders)

	// -------- staff only --------
	staff := auth.Group("", authmw.StaffOnly())
	staff.PUT("/candies/:sku/inventory", s.shopHandler.UpdateInventory)
	staff.GET("/reports/sales", s.reportHandler.SalesSummary)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
