package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	adminhandler "github.com/clarahq/support-backend/internal/handler/admin"
	chathandler "github.com/clarahq/support-backend/internal/handler/chat"
	supporthandler "github.com/clarahq/support-backend/internal/handler/support"
	wshandler "github.com/clarahq/support-backend/internal/handler/ws"
	middlewarePkg "github.com/clarahq/support-backend/internal/middleware"
	"github.com/clarahq/support-backend/internal/service/ai"
	chatservice "github.com/clarahq/support-backend/internal/service/chat"
	"github.com/clarahq/support-backend/internal/store"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatservice.Service, st *store.Store, aiSvc *ai.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chathandler.New(chatSvc).RegisterRoutes(r)
	supporthandler.New(st, aiSvc).RegisterRoutes(r)
	adminhandler.New(st).RegisterRoutes(r)
	wshandler.New(chatSvc).RegisterRoutes(r)

	return r
}
