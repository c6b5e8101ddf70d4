package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/chat"
)

const chatThreadListSize = 50

func (h *Handler) renderChat(w http.ResponseWriter, r *http.Request, conv *chat.Conversation) {
	threads, _, err := h.Chat.Threads(r.Context(), domain.PageRequest{MaxResults: chatThreadListSize})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, chatPage(chatPageData{
		Threads:      threads,
		Conversation: conv,
		Suggestions:  h.Chat.Suggestions(),
		CSRF:         csrfField(r),
	}))
}

// ChatIndex shows the thread list and an empty composer.
func (h *Handler) ChatIndex(w http.ResponseWriter, r *http.Request) {
	h.renderChat(w, r, nil)
}

// ChatThread shows one conversation.
func (h *Handler) ChatThread(w http.ResponseWriter, r *http.Request) {
	conv, err := h.Chat.Conversation(r.Context(), chi.URLParam(r, "threadID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderChat(w, r, conv)
}

// ChatNewThread starts a thread, sending the first message when one is given.
func (h *Handler) ChatNewThread(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	thread, err := h.Chat.NewThread(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if msg := formString(r.PostForm, "message"); msg != "" {
		if _, err := h.Chat.Send(r.Context(), thread.ID, msg); err != nil {
			h.renderServiceError(w, r, err)
			return
		}
	}
	redirect(w, r, "/ui/chat/"+thread.ID)
}

// ChatSend posts a message to a thread.
func (h *Handler) ChatSend(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	threadID := chi.URLParam(r, "threadID")
	if _, err := h.Chat.Send(r.Context(), threadID, formRaw(r.PostForm, "message")); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	redirect(w, r, "/ui/chat/"+threadID)
}

// ChatDeleteThread deletes a thread.
func (h *Handler) ChatDeleteThread(w http.ResponseWriter, r *http.Request) {
	if err := h.Chat.DeleteThread(r.Context(), chi.URLParam(r, "threadID")); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	redirect(w, r, "/ui")
}
