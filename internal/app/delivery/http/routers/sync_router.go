package routers

import (
	"photodoc-service/internal/app/delivery/http/controllers"
	"photodoc-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSyncRoutes(router chi.Router, middlewares *middlewares.Middlewares, syncController *controllers.SyncController) {
	router.With(middlewares.Authenticate).Post("/encounters/{encounterID}/push", syncController.PushEncounter)
	router.With(middlewares.Authenticate).Post("/patients/{patientID}/history", syncController.FetchPatientHistory)
}
