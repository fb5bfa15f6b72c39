package handler

import (
	"net/http"
	"sync"

	"github.com/julienschmidt/httprouter"

	"maison/internal/chat"
	"maison/internal/chat/repository"
	"maison/pkg/auth"
	httputil "maison/pkg/http"
	"maison/pkg/logger"
	"maison/pkg/model"
)

type MessageHandler struct {
	repo   repository.MessageRepository
	hub    *chat.Hub
	signer *auth.Signer
	log    *logger.Logger
}

func NewMessageHandler(repo repository.MessageRepository, hub *chat.Hub, signer *auth.Signer, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		repo:   repo,
		hub:    hub,
		signer: signer,
		log:    log,
	}
}

func (h *MessageHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var count int64
	var messages []*model.ChatMessage
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = h.repo.Count(r.Context())
	}()

	go func() {
		defer wg.Done()
		messages, errFind = h.repo.FindAll(r.Context(), limit, offset)
	}()

	wg.Wait()
	if errCount != nil || errFind != nil {
		h.log.Error("failed to list messages", "count_error", errCount, "find_error", errFind)
		if writeErr := httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
			Error: "Failed to retrieve messages",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "GetAll", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, messages, count, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

// ServeWS is mounted outside the JSON middleware stack; timeouts and
// body limits do not apply to a long-lived upgraded connection.
func (h *MessageHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	chat.ServeWS(h.hub, h.signer, w, r)
}

func (h *MessageHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/messages", h.GetAll)
}
