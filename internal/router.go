package internal

import (
	"github.com/julienschmidt/httprouter"
)

// Router ...
type Router struct {
	httprouter.Router
}

// NewRouter ...
func NewRouter() *Router {
	return &Router{
		httprouter.Router{
			RedirectTrailingSlash:  true,
			RedirectFixedPath:      true,
			HandleMethodNotAllowed: false,
			HandleOPTIONS:          true,
		},
	}
}
