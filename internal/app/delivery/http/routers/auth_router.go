package routers

import (
	"photodoc-service/internal/app/delivery/http/controllers"
	"photodoc-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/login", authController.Login)
	router.Post("/refresh", authController.RefreshToken)
	router.With(middlewares.Authenticate).Get("/session", authController.CheckSession)
	router.With(middlewares.Authenticate).Post("/logout", authController.Logout)
}
