package cards

import (
	"net/http"

	"github.com/louisbranch/postcard/internal/services/postcard/platform/httpx"
	"github.com/louisbranch/postcard/internal/services/postcard/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleCard)
	mux.HandleFunc(http.MethodPost+" "+routepath.Root+"{$}", h.handleEdit)

	mux.HandleFunc(http.MethodPost+" "+routepath.APICardEncode, h.handleEncode)
	mux.HandleFunc(http.MethodGet+" "+routepath.APICardEncode, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.APICardDecode, h.handleDecode)

	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
