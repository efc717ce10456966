// Package router builds the Echo instance: global middleware, system routes
// and the /api/v1 groups.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/handler"
	"github.com/magnetco/enthusiastauto-sub003/internal/middleware"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	mw := middleware.NewMiddlewares(s, services)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		mw.Global.CORS(),
		mw.Global.Secure(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1", mw.Auth.Identify)
	registerAPIRoutes(v1, h, mw)

	return router
}

func registerAPIRoutes(v1 *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	requireAuth := mw.Auth.RequireAuth
	api := mw.RateLimit.API()

	auth := v1.Group("/auth", mw.RateLimit.Auth())
	auth.POST("/signup", handler.Handle(h.Auth.Handler, h.Auth.Signup, http.StatusCreated))
	auth.POST("/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK))
	auth.POST("/logout", handler.HandleNoContent(h.Auth.Handler, h.Auth.Logout, http.StatusNoContent), requireAuth)
	auth.POST("/password-reset", handler.Handle(h.Auth.Handler, h.Auth.RequestPasswordReset, http.StatusOK))
	auth.POST("/password-reset/confirm", handler.HandleNoContent(h.Auth.Handler, h.Auth.ConfirmPasswordReset, http.StatusNoContent))

	me := v1.Group("/me", api, requireAuth)
	me.GET("", handler.Handle(h.Users.Handler, h.Users.GetProfile, http.StatusOK))
	me.PATCH("", handler.Handle(h.Users.Handler, h.Users.UpdateProfile, http.StatusOK))
	me.POST("/password", handler.HandleNoContent(h.Users.Handler, h.Users.ChangePassword, http.StatusNoContent))

	favorites := v1.Group("/favorites", api, requireAuth)
	favorites.GET("", handler.Handle(h.Favorites.Handler, h.Favorites.ListFavorites, http.StatusOK))
	favorites.POST("", handler.Handle(h.Favorites.Handler, h.Favorites.AddFavorite, http.StatusCreated))
	favorites.GET("/:vehicleId", handler.Handle(h.Favorites.Handler, h.Favorites.GetFavoriteStatus, http.StatusOK))
	favorites.DELETE("/:vehicleId", handler.HandleNoContent(h.Favorites.Handler, h.Favorites.RemoveFavorite, http.StatusNoContent))

	v1.POST("/vehicles/:vehicleId/views", handler.HandleNoContent(h.Vehicles.Handler, h.Vehicles.RecordView, http.StatusNoContent), api)
	v1.GET("/recommendations", handler.Handle(h.Vehicles.Handler, h.Vehicles.GetRecommendations, http.StatusOK), api)

	forms := mw.RateLimit.Forms()

	v1.POST("/service-requests", handler.Handle(h.Forms.Handler, h.Forms.CreateServiceRequest, http.StatusCreated), forms)
	v1.GET("/service-requests", handler.Handle(h.Forms.Handler, h.Forms.ListServiceRequests, http.StatusOK), api, requireAuth)

	v1.POST("/sell-submissions", handler.Handle(h.Forms.Handler, h.Forms.CreateSellSubmission, http.StatusCreated), forms)
	v1.GET("/sell-submissions", handler.Handle(h.Forms.Handler, h.Forms.ListSellSubmissions, http.StatusOK), api, requireAuth)
}
