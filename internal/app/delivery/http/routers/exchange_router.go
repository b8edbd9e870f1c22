package routers

import (
	"photodoc-service/internal/app/delivery/http/controllers"
	"photodoc-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachExchangeRoutes(router chi.Router, middlewares *middlewares.Middlewares, exchangeController *controllers.ExchangeController) {
	router.With(middlewares.Authenticate).Post("/export", exchangeController.Export)
	router.With(middlewares.Authenticate).Post("/import", exchangeController.Import)
}
