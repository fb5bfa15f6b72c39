package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"

	"maison/internal/concierge/service"
	httputil "maison/pkg/http"
	"maison/pkg/logger"
)

type FlowHandler struct {
	service *service.ConciergeService
	log     *logger.Logger
}

func NewFlowHandler(service *service.ConciergeService, log *logger.Logger) *FlowHandler {
	return &FlowHandler{
		service: service,
		log:     log,
	}
}

type executeFlowResponse struct {
	Success bool           `json:"success"`
	Output  map[string]any `json:"output,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type listFlowsResponse struct {
	Flows []string `json:"flows"`
}

func (h *FlowHandler) Execute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	flowName := ps.ByName("name")

	input := make(map[string]any)
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, executeFlowResponse{
				Error: "invalid request payload",
			}); writeErr != nil {
				h.log.Error("failed to write JSON response", "handler", "Execute", "operation", "WriteJSON", "error", writeErr)
			}
			return
		}
	}

	h.log.Info("Executing flow", "flow", flowName)

	output, err := h.service.ExecuteFlow(r.Context(), flowName, input)
	if err != nil {
		h.log.Error("Flow execution failed", "flow", flowName, "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusUnprocessableEntity, executeFlowResponse{
			Error: err.Error(),
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Execute", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, executeFlowResponse{
		Success: true,
		Output:  output,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Execute", "operation", "WriteJSON", "error", err)
	}
}

func (h *FlowHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	flows := h.service.AvailableFlows()
	sort.Strings(flows)

	if err := httputil.WriteJSON(w, http.StatusOK, listFlowsResponse{Flows: flows}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "List", "operation", "WriteJSON", "error", err)
	}
}

func (h *FlowHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/flows/:name", h.Execute)
	router.GET("/api/v1/flows", h.List)
}
