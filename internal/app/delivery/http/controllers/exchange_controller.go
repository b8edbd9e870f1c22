package controllers

import (
	"context"
	"net/http"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/dto/requests"
	"photodoc-service/internal/pkg/dto/responses"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Bundles can carry a lot of photo bytes, so export and import get a much
// longer deadline than the rest of the API.
const exchangeTimeout = 2 * time.Minute

type ExchangeController struct {
	Log             *zap.Logger
	ExchangeUsecase contracts.ExchangeUsecase
}

func NewExchangeController(logger *zap.Logger, exchangeUsecase contracts.ExchangeUsecase) *ExchangeController {
	return &ExchangeController{
		Log:             logger,
		ExchangeUsecase: exchangeUsecase,
	}
}

func (ctrl *ExchangeController) Export(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ExportBundle)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), exchangeTimeout)
	defer cancel()

	data, err := ctrl.ExchangeUsecase.Export(ctx, request.Password)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExportSuccessMessage, &responses.ExportBundle{Data: data})
}

func (ctrl *ExchangeController) Import(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ImportBundle)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), exchangeTimeout)
	defer cancel()

	err = ctrl.ExchangeUsecase.Import(ctx, request.Data, request.Password)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ImportSuccessMessage, nil)
}
