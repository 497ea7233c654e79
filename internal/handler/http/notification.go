package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/middleware"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

// streamKeepalive is how often an idle stream gets a ping event.
const streamKeepalive = 30 * time.Second

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkOneAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
	revoked      middleware.RevocationChecker
	keepalive    time.Duration
}

func NewNotificationHandler(notifService notification.Service, revoked middleware.RevocationChecker) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
		revoked:      revoked,
		keepalive:    streamKeepalive,
	}
}

// List returns the caller's notifications; ?unread_only=true hides read ones.
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	recipient, err := recipientID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	unreadOnly := r.URL.Query().Get("unread_only")
	result, err := h.notifService.GetNotifications(r.Context(), recipient, unreadOnly == "true" || unreadOnly == "1")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	var req notification.MarkAsReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkAsRead decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	h.markAsRead(w, r, req)
}

func (h *notificationHandlerImpl) MarkOneAsRead(w http.ResponseWriter, r *http.Request) {
	h.markAsRead(w, r, notification.MarkAsReadRequest{
		NotificationIDs: []string{chi.URLParam(r, "id")},
	})
}

func (h *notificationHandlerImpl) markAsRead(w http.ResponseWriter, r *http.Request, req notification.MarkAsReadRequest) {
	recipient, err := recipientID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.notifService.MarkAsRead(r.Context(), recipient, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}

func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	recipient, err := recipientID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.notifService.MarkAllAsRead(r.Context(), recipient); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}

// Stream pushes new notifications as server-sent events until the client
// disconnects or the token is signed out. EventSource cannot send headers, so
// the access token may be passed as ?jwt=.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	recipient, err := recipientID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notifService.Subscribe(r.Context(), recipient)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"recipient_id\":%q}\n\n", recipient)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("notification stream encode error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			if h.revoked.IsTokenRevoked(token.JwtID()) {
				fmt.Fprint(w, "event: revoked\ndata: {\"status\":\"signed_out\"}\n\n")
				flusher.Flush()
				return
			}
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
