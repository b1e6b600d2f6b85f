package in

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	materialsdto "fathom/internal/modules/materials/dto"
	materialsin "fathom/internal/modules/materials/port/in"
	"fathom/internal/platform/httpapi"
)

type HTTPHandler struct {
	usecase materialsin.Usecase
}

func NewHTTPHandler(usecase materialsin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Route("/api/materials", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/modules/{slug}", h.module)
		r.Get("/{id}", h.open)
	})
	r.Route("/api/modules", func(r chi.Router) {
		r.Get("/", h.modules)
		r.Get("/{slug}", h.module)
	})
	r.Route("/api/pdfs", func(r chi.Router) {
		r.Get("/", h.pdfs)
		r.Get("/{filename}", h.download)
	})
}

func (h HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.List(r.Context())
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) open(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	out, err := h.usecase.Open(r.Context(), materialsdto.OpenInput{ID: chi.URLParam(r, "id"), Page: page})
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, out)
}

// modules accepts ?category=<name> and ?enabled=true.
func (h HTTPHandler) modules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	enabledOnly, _ := strconv.ParseBool(q.Get("enabled"))
	out, err := h.usecase.Modules(r.Context(), materialsdto.ModulesInput{Category: q.Get("category"), EnabledOnly: enabledOnly})
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) module(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Module(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) pdfs(w http.ResponseWriter, r *http.Request) {
	files, err := h.usecase.PDFs(r.Context())
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	if files == nil {
		files = []materialsdto.PDFOutput{}
	}
	httpapi.RespondJSON(w, http.StatusOK, map[string]any{"pdfs": files})
}

func (h HTTPHandler) download(w http.ResponseWriter, r *http.Request) {
	path, err := h.usecase.PDFPath(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}
