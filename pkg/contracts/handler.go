package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by HTTP handlers that attach their routes to the
// service router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
