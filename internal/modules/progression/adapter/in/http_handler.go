package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	progressdto "fathom/internal/modules/progression/dto"
	progressin "fathom/internal/modules/progression/port/in"
	"fathom/internal/platform/httpapi"
)

type HTTPHandler struct {
	usecase progressin.Usecase
}

func NewHTTPHandler(usecase progressin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

// Routes mounts the progression endpoints under /api/progress.
func (h HTTPHandler) Routes(r chi.Router) {
	r.Route("/api/progress", func(r chi.Router) {
		r.Get("/", h.show)
		r.Get("/catalog", h.catalog)
		r.Get("/history", h.history)
		r.Post("/sessions", h.session)
		r.Post("/messages", h.message)
		r.Post("/journey", h.startJourney)
		r.Post("/materials/{id}/purchase", h.purchase)
		r.Post("/freeze", h.buyFreeze)
		r.Post("/recover", h.recoverStreak)
		r.Put("/goal", h.setGoal)
	})
}

func (h HTTPHandler) show(w http.ResponseWriter, r *http.Request) {
	state, err := h.usecase.Snapshot(r.Context())
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, state)
}

func (h HTTPHandler) catalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.usecase.Catalog(r.Context())
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, catalog)
}

func (h HTTPHandler) history(w http.ResponseWriter, r *http.Request) {
	events, err := h.usecase.History(r.Context(), 50)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, events)
}

func (h HTTPHandler) session(w http.ResponseWriter, r *http.Request) {
	respondChange(w, http.StatusCreated)(h.usecase.RecordSession(r.Context()))
}

func (h HTTPHandler) message(w http.ResponseWriter, r *http.Request) {
	respondChange(w, http.StatusCreated)(h.usecase.RecordMessage(r.Context()))
}

func (h HTTPHandler) startJourney(w http.ResponseWriter, r *http.Request) {
	var input progressdto.StartJourneyInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, err)
		return
	}
	respondChange(w, http.StatusOK)(h.usecase.StartJourney(r.Context(), input))
}

func (h HTTPHandler) purchase(w http.ResponseWriter, r *http.Request) {
	input := progressdto.PurchaseInput{MaterialID: chi.URLParam(r, "id")}
	respondChange(w, http.StatusOK)(h.usecase.PurchaseMaterial(r.Context(), input))
}

func (h HTTPHandler) buyFreeze(w http.ResponseWriter, r *http.Request) {
	respondChange(w, http.StatusOK)(h.usecase.PurchaseStreakFreeze(r.Context()))
}

func (h HTTPHandler) recoverStreak(w http.ResponseWriter, r *http.Request) {
	respondChange(w, http.StatusOK)(h.usecase.RecoverStreak(r.Context()))
}

func (h HTTPHandler) setGoal(w http.ResponseWriter, r *http.Request) {
	var input progressdto.GoalInput
	if err := httpapi.Decode(r, &input); err != nil {
		httpapi.RespondError(w, err)
		return
	}
	respondChange(w, http.StatusOK)(h.usecase.SetGoal(r.Context(), input))
}

func respondChange(w http.ResponseWriter, code int) func(progressdto.ChangeOutput, error) {
	return func(out progressdto.ChangeOutput, err error) {
		if err != nil {
			httpapi.RespondError(w, err)
			return
		}
		httpapi.RespondJSON(w, code, out)
	}
}
