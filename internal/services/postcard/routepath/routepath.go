// Package routepath centralizes postcard HTTP routes.
package routepath

const (
	Root          = "/"
	Health        = "/healthz"
	StaticPrefix  = "/static/"
	TutorialSeen  = "/tutorial/seen"
	APIPrefix     = "/api/"
	APICardEncode = "/api/cards/encode"
	APICardDecode = "/api/cards/decode"
)

// Static returns the path of an embedded asset.
func Static(name string) string {
	return StaticPrefix + name
}
