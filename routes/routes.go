package routes

import (
	"net/http"

	"munchmate/auth"
	"munchmate/cart"
	"munchmate/invoice"
	"munchmate/menu"
	"munchmate/middleware"
	"munchmate/orders"
	"munchmate/pay"
	"munchmate/profile"
	"munchmate/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/menupic/*filepath", http.Dir("static/menupic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.SaveProfile))

	router.POST("/api/profile/request-otp", ratelim.RateLimit(middleware.Authenticate(profile.RequestOTPHandler)))
	router.POST("/api/profile/verify-otp", ratelim.RateLimit(middleware.Authenticate(profile.VerifyOTPHandler)))
}

func AddMenuRoutes(router *httprouter.Router) {
	router.GET("/api/menu", ratelim.RateLimit(middleware.OptionalAuth(menu.GetMenuItems)))
	router.GET("/api/categories", ratelim.RateLimit(middleware.OptionalAuth(menu.GetCategories)))
	router.GET("/api/menu/:menuid", ratelim.RateLimit(middleware.OptionalAuth(menu.GetMenuItem)))
	router.GET("/api/menu/:menuid/stock", ratelim.RateLimit(middleware.OptionalAuth(menu.GetStock)))
	router.POST("/api/menu/:menuid/buy", middleware.Authenticate(menu.BuyMenuItem))

	router.POST("/api/menu", middleware.Authenticate(middleware.RequireRole("staff", menu.CreateMenuItem)))
	router.PUT("/api/menu/:menuid", middleware.Authenticate(middleware.RequireRole("staff", menu.EditMenuItem)))
	router.DELETE("/api/menu/:menuid", middleware.Authenticate(middleware.RequireRole("staff", menu.DeleteMenuItem)))
	router.POST("/api/menu/:menuid/photo", middleware.Authenticate(middleware.RequireRole("staff", menu.UploadMenuPhoto)))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/api/cart", middleware.Authenticate(h.GetCart))
	router.POST("/api/cart", middleware.Authenticate(h.AddItem))
	router.DELETE("/api/cart", middleware.Authenticate(h.ClearCart))
	router.DELETE("/api/cart/:itemid", middleware.Authenticate(h.RemoveItem))
	router.PUT("/api/cart/:itemid/decrease", middleware.Authenticate(h.DecreaseItem))
}

func AddPayRoutes(router *httprouter.Router, h *pay.Handler) {
	router.POST("/api/pay/session", ratelim.RateLimit(middleware.Authenticate(h.StartPayment)))
	router.POST("/api/pay/confirm", ratelim.RateLimit(middleware.Authenticate(h.ConfirmPayment)))
}

func AddOrderRoutes(router *httprouter.Router, h *invoice.Handler, oh *orders.Handler, hub *orders.Hub) {
	router.POST("/api/checkout", ratelim.RateLimit(middleware.Authenticate(h.Checkout)))

	router.GET("/api/orders", middleware.Authenticate(oh.ListOrders))
	router.GET("/api/orders/:invoicenr", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:invoicenr/qr", middleware.Authenticate(orders.OrderQR))
	router.GET("/api/orders/:invoicenr/print", middleware.Authenticate(invoice.PrintInvoice))
	router.PUT("/api/orders/:invoicenr/status", middleware.Authenticate(middleware.RequireRole("staff", orders.UpdateStatus)))

	router.GET("/ws/orders", middleware.Authenticate(hub.ServeWS))
}
