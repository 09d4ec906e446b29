package cards

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/postcard/internal/services/postcard/card"
	"github.com/louisbranch/postcard/internal/services/postcard/i18n"
	apperrors "github.com/louisbranch/postcard/internal/services/postcard/platform/errors"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/httpx"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/requestmeta"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/visitor"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/weberror"
	"github.com/louisbranch/postcard/internal/services/postcard/templates"
	"github.com/louisbranch/postcard/internal/services/postcard/view"
)

const maxEncodeBody = 64 << 10

type handlers struct {
	service service
}

type encodeResponse struct {
	Card string `json:"card"`
	URL  string `json:"url"`
}

type decodeResponse struct {
	OK     bool        `json:"ok"`
	Reason card.Reason `json:"reason,omitempty"`
	Card   card.State  `json:"card"`
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleCard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	state, result := card.Resolve(query)
	requestID := httpx.RequestIDFrom(r)
	if !result.OK && result.Reason != card.ReasonEmpty {
		h.service.logger.Printf("card decode fallback reason=%s request_id=%s", result.Reason, requestID)
	}
	h.renderCard(w, r, http.StatusOK, pageRequest{
		state: state,
		face:  view.ParseFace(query.Get(sideParam)),
		step:  parseStep(query.Get(stepParam)),
		query: query,
	})
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form", err))
		return
	}
	req := pageRequest{
		face:  view.ParseFace(r.PostForm.Get(sideParam)),
		query: r.URL.Query(),
	}
	state, err := h.service.editState(r.PostForm)
	req.state = state
	req.editErr = err
	status := http.StatusOK
	if err != nil {
		status = apperrors.HTTPStatus(err)
	}
	h.renderCard(w, r, status, req)
}

func (h handlers) renderCard(w http.ResponseWriter, r *http.Request, status int, req pageRequest) {
	loc, lang := i18n.ResolveLocalizer(w, r)
	id, known := visitor.Read(r)
	if !known {
		id = visitor.Ensure(w, r, h.service.scheme)
	}
	req.visitorID = id
	req.newVisitor = !known
	if req.editErr != nil {
		req.formError = weberror.PublicMessage(loc, req.editErr)
	}

	requestID := httpx.RequestIDFrom(r)
	page, layout, err := h.service.buildPage(r, req, requestID, loc)
	if err != nil {
		h.service.logger.Printf("card page build failed request_id=%s err=%v", requestID, err)
		weberror.WriteAppError(w, r, http.StatusInternalServerError)
		return
	}
	layout.Lang = lang

	var body bytes.Buffer
	ctx := templ.WithChildren(httpx.RequestContext(r), templates.CardPage(page, loc))
	if err := templates.Layout(layout).Render(ctx, &body); err != nil {
		h.service.logger.Printf("card page render failed request_id=%s err=%v", requestID, err)
		weberror.WriteAppError(w, r, http.StatusInternalServerError)
		return
	}
	_ = httpx.WriteHTML(w, status, body.String())
}

func (h handlers) handleEncode(w http.ResponseWriter, r *http.Request) {
	var state card.State
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEncodeBody))
	if err := decoder.Decode(&state); err != nil {
		_ = httpx.WriteJSONError(w, apperrors.Wrap(apperrors.KindInvalidInput, "invalid card json", err))
		return
	}
	if !card.ValidCoordinates(state.Latitude, state.Longitude) {
		_ = httpx.WriteJSONError(w, apperrors.EK(apperrors.KindInvalidInput, "error.card.invalid", "coordinates out of range"))
		return
	}
	encoded, err := card.Encode(state)
	if err != nil {
		_ = httpx.WriteJSONError(w, apperrors.Wrap(apperrors.KindUnknown, "encode card", err))
		return
	}
	shareURL, err := card.ShareURL(requestmeta.ResolveBaseURL(r, h.service.baseURL, h.service.scheme), state)
	if err != nil {
		_ = httpx.WriteJSONError(w, apperrors.Wrap(apperrors.KindUnknown, "encode card", err))
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, encodeResponse{Card: encoded, URL: shareURL})
}

func (h handlers) handleDecode(w http.ResponseWriter, r *http.Request) {
	result := card.FromQuery(r.URL.Query())
	state := result.State
	if !result.OK {
		state = card.Default()
	}
	_ = httpx.WriteJSON(w, http.StatusOK, decodeResponse{OK: result.OK, Reason: result.Reason, Card: state})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound)
}
