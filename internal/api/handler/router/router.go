package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.routes = append(router.routes, routes...)
		}
	}

	// WithRouteMiddleware aplica um middleware em todas as rotas, recebendo o padrão
	// da rota. É o mais externo da cadeia de cada rota.
	WithRouteMiddleware = func(mw func(path string) func(http.Handler) http.Handler) ConfigRouter {
		return func(router *Router) {
			router.common = append(router.common, mw)
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // Lista de middlewares específicos para esta rota
}

type Router struct {
	router *httprouter.Router
	routes []Route
	common []func(path string) func(http.Handler) http.Handler
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}

	for _, config := range configs {
		config(router)
	}

	router.register()

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// register adiciona as rotas ao httprouter com seus middlewares, do último para o primeiro
func (r *Router) register() {
	for _, route := range r.routes {
		var handler http.Handler = route.Handler

		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		for i := len(r.common) - 1; i >= 0; i-- {
			handler = r.common[i](route.Path)(handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}
