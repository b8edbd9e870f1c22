package controllers

import (
	"context"
	"io"
	"net/http"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/dto/requests"
	"photodoc-service/internal/pkg/dto/responses"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const syncTimeout = 60 * time.Second

type SyncController struct {
	Log         *zap.Logger
	SyncUsecase contracts.SyncUsecase
}

func NewSyncController(logger *zap.Logger, syncUsecase contracts.SyncUsecase) *SyncController {
	return &SyncController{
		Log:         logger,
		SyncUsecase: syncUsecase,
	}
}

// PushEncounter reports the outcome in the body rather than the status
// code: a failed push is an expected state, not a server error, and the
// retry queue already owns it.
func (ctrl *SyncController) PushEncounter(w http.ResponseWriter, r *http.Request) {
	encounterID := chi.URLParam(r, "encounterID")

	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	synced := ctrl.SyncUsecase.PushEncounter(ctx, encounterID)

	message := constvars.EncounterPushedMessage
	if !synced {
		message = constvars.EncounterPushFailedMessage
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, &responses.SyncOutcome{Synced: synced})
}

func (ctrl *SyncController) FetchPatientHistory(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	request := new(requests.FetchPatientHistory)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil && err != io.EOF {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
	defer cancel()

	synced := ctrl.SyncUsecase.FetchPatientHistory(ctx, patientID, request.LastUpdated)

	message := constvars.HistoryFetchedMessage
	if !synced {
		message = constvars.HistoryFetchFailedMessage
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, &responses.SyncOutcome{Synced: synced})
}
