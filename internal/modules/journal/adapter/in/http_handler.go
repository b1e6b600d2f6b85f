package in

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	journaldto "fathom/internal/modules/journal/dto"
	journalin "fathom/internal/modules/journal/port/in"
	"fathom/internal/platform/httpapi"
)

type HTTPHandler struct {
	usecase journalin.Usecase
}

func NewHTTPHandler(usecase journalin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Route("/api/journal", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/search", h.search)
		r.Get("/prompts", h.prompts)
		r.Post("/suggestions", h.suggestions)
		r.Get("/{id}", h.get)
	})
	r.Get("/api/daily-question", h.question)
	r.Post("/api/daily-question", h.answer)
}

func (h HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.usecase.List(r.Context())
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []journaldto.EntryOutput{}
	}
	httpapi.RespondJSON(w, http.StatusOK, entries)
}

func (h HTTPHandler) create(w http.ResponseWriter, r *http.Request) {
	var input journaldto.CreateEntryInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, err)
		return
	}
	out, err := h.usecase.Create(r.Context(), input)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusCreated, out)
}

func (h HTTPHandler) get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.usecase.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, entry)
}

func (h HTTPHandler) search(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.usecase.Search(r.Context(), journaldto.SearchInput{Query: r.URL.Query().Get("q"), Limit: limit})
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	if hits == nil {
		hits = []journaldto.SearchHit{}
	}
	httpapi.RespondJSON(w, http.StatusOK, hits)
}

func (h HTTPHandler) prompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.usecase.Prompts(r.Context(), journaldto.PromptsInput{Role: q.Get("role"), Frequency: q.Get("frequency")})
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) suggestions(w http.ResponseWriter, r *http.Request) {
	var input journaldto.SuggestionsInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, err)
		return
	}
	out, err := h.usecase.Suggestions(r.Context(), input)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string][]string{"suggestions": out})
}

func (h HTTPHandler) question(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.TodayQuestion(r.Context())
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) answer(w http.ResponseWriter, r *http.Request) {
	var input journaldto.AnswerInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, err)
		return
	}
	out, err := h.usecase.AnswerQuestion(r.Context(), input)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, out)
}
