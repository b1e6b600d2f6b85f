package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	chatdto "fathom/internal/modules/chat/dto"
	chatin "fathom/internal/modules/chat/port/in"
	"fathom/internal/platform/httpapi"
)

type HTTPHandler struct {
	usecase chatin.Usecase
}

func NewHTTPHandler(usecase chatin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Post("/api/ai-chat", h.reply)
	r.Route("/api/chat-sessions", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.close)
		r.Get("/{id}", h.get)
	})
}

func (h HTTPHandler) reply(w http.ResponseWriter, r *http.Request) {
	var input chatdto.ReplyInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, err)
		return
	}
	out, err := h.usecase.Reply(r.Context(), input)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.usecase.List(r.Context())
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	if sessions == nil {
		sessions = []chatdto.SessionOutput{}
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (h HTTPHandler) close(w http.ResponseWriter, r *http.Request) {
	var input chatdto.CloseInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, err)
		return
	}
	out, err := h.usecase.Close(r.Context(), input)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, out)
}

func (h HTTPHandler) get(w http.ResponseWriter, r *http.Request) {
	session, err := h.usecase.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, session)
}
