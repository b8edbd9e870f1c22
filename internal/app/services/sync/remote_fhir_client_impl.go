package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/app/services/bundles"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/fhir_dto"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	remoteFhirClientInstance contracts.RemoteFhirClient
	onceRemoteFhirClient     sync.Once
)

type remoteFhirClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewRemoteFhirClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.RemoteFhirClient {
	onceRemoteFhirClient.Do(func() {
		remoteFhirClientInstance = &remoteFhirClient{
			BaseUrl:    baseUrl,
			HTTPClient: &http.Client{Timeout: timeout},
			Log:        logger,
		}
	})
	return remoteFhirClientInstance
}

func (c *remoteFhirClient) PostTransactionBundle(ctx context.Context, bundle *fhir_dto.Bundle) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("remoteFhirClient.PostTransactionBundle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)

	requestJSON, err := bundles.Serialize(bundle)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("remoteFhirClient.PostTransactionBundle error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("remoteFhirClient.PostTransactionBundle error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.Log.Error("remoteFhirClient.PostTransactionBundle remote rejected bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.ByteString("body", bodyBytes),
		)
		return exceptions.ErrSendHTTPRequest(fmt.Errorf("remote returned status %d", resp.StatusCode))
	}

	c.Log.Info("remoteFhirClient.PostTransactionBundle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (c *remoteFhirClient) GetPatientEverything(ctx context.Context, patientID, lastUpdated string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("remoteFhirClient.GetPatientEverything called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	endpoint := fmt.Sprintf("%s%s/%s/%s", c.BaseUrl, constvars.ResourcePatient, patientID, constvars.FhirEverythingOperation)
	if lastUpdated != "" {
		query := url.Values{}
		query.Set(constvars.FhirLastUpdatedParameter, lastUpdated)
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		c.Log.Error("remoteFhirClient.GetPatientEverything error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("remoteFhirClient.GetPatientEverything error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		c.Log.Error("remoteFhirClient.GetPatientEverything unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.ErrSendHTTPRequest(fmt.Errorf("remote returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("remoteFhirClient.GetPatientEverything error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBundle)
	}
	return body, nil
}
