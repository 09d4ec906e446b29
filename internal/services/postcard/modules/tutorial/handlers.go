package tutorial

import (
	"log"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/postcard/internal/services/postcard/platform/errors"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/httpx"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/requestmeta"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/visitor"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/weberror"
	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
	"github.com/louisbranch/postcard/internal/services/postcard/routepath"
)

// Outcomes accepted by the seen endpoint.
const (
	OutcomeDismissed = "dismissed"
	OutcomeCompleted = "completed"
)

type handlers struct {
	prefs  prefs.Store
	logger *log.Logger
	scheme requestmeta.SchemePolicy
}

func (h handlers) handleSeen(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProof(r, h.scheme) {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindForbidden, "cross-origin request"))
		return
	}
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form", err))
		return
	}
	outcome := strings.TrimSpace(r.PostForm.Get("outcome"))
	if outcome != OutcomeDismissed && outcome != OutcomeCompleted {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindInvalidInput, "outcome must be dismissed or completed"))
		return
	}

	visitorID := visitor.Ensure(w, r, h.scheme)
	if err := prefs.SetBool(r.Context(), h.prefs, visitorID, prefs.TutorialShownKey, true); err != nil {
		h.logger.Printf("tutorial flag write failed visitor=%s outcome=%s request_id=%s err=%v", visitorID, outcome, httpx.RequestIDFrom(r), err)
		weberror.WriteModuleError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "preference store unavailable", err))
		return
	}
	h.logger.Printf("tutorial seen visitor=%s outcome=%s request_id=%s", visitorID, outcome, httpx.RequestIDFrom(r))

	if httpx.WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, routepath.Root, http.StatusSeeOther)
}
