package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gaswhisperer/gaswhisperer/config"
	"github.com/gaswhisperer/gaswhisperer/rpc/handler"
	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/gaswhisperer/gaswhisperer/util/rpc/handlers"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
)

// maxRequestBodySize limits the size of REST request body.
const maxRequestBodySize = 1 << 20

var errInvalidCountParam = errors.New("count must be an integer")

// HealthStatus is the response of health check.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// restAPI provides gas station REST APIs.
type restAPI struct {
	handler *handler.GasStationHandler
}

// NewRestHandler returns the HTTP handler to serve gas station REST APIs.
func NewRestHandler(gasHandler *handler.GasStationHandler) http.Handler {
	api := &restAPI{handler: gasHandler}
	mux := http.NewServeMux()

	route := func(pattern, name string, fn http.HandlerFunc) {
		mux.Handle(pattern, handlers.Metrics(name)(fn))
	}

	route("GET /gas-trend", "gas-trend", api.gasTrend)
	route("GET /fetch-recent", "fetch-recent", api.fetchRecent)
	route("POST /optimize", "optimize", api.optimize)
	route("POST /ai-predict", "ai-predict", api.aiPredict)
	route("POST /explain", "explain", api.explain)
	route("GET /healthz", "healthz", api.healthz)

	return mux
}

func (api *restAPI) gasTrend(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, api.handler.Trend(r.Context()))
}

func (api *restAPI) fetchRecent(w http.ResponseWriter, r *http.Request) {
	count := types.DefaultWindowSize

	if v := r.URL.Query().Get("count"); len(v) > 0 {
		var err error
		if count, err = strconv.Atoi(v); err != nil {
			handlers.WriteError(w, http.StatusBadRequest, errInvalidCountParam)
			return
		}
	}

	points, err := api.handler.Recent(r.Context(), count)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, points)
}

func (api *restAPI) optimize(w http.ResponseWriter, r *http.Request) {
	var req types.OptimizationRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, err)
		return
	}

	result, err := api.handler.Optimize(r.Context(), &req)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

func (api *restAPI) aiPredict(w http.ResponseWriter, r *http.Request) {
	var req types.PredictionRequest
	defaults.SetDefaults(&req)

	if err := decodeBody(w, r, &req, true); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, err)
		return
	}

	prediction, err := api.handler.Predict(r.Context(), &req)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, prediction)
}

func (api *restAPI) explain(w http.ResponseWriter, r *http.Request) {
	var req types.ExplainRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, api.handler.Explain(&req))
}

func (api *restAPI) healthz(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, HealthStatus{Status: "ok", Version: config.VersionString()})
}

// decodeBody decodes JSON request body into v. Empty body is accepted only if allowEmpty.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		return errors.WithMessage(err, "failed to read request body")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if allowEmpty {
			return nil
		}

		return errors.New("request body required")
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.WithMessage(err, "invalid request body")
	}

	return nil
}
