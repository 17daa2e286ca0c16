package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sdeshpande/CivicDesk/internal/middleware"
	"go.uber.org/zap"
)

// NewRouter constructs the HTTP handler serving the complaint API.
//
// Routes:
//
//	POST /complaintlogin/          → authHandler.Login
//	POST /addcomplaint/            → complaintsHandler.Create
//	GET  /allcomplaints/           → complaintsHandler.List
//	GET  /complaintdetails/{id}/   → complaintsHandler.Details
//	PUT  /updatecomplaint/{id}/    → complaintsHandler.Update
//	GET  /uploads/*                → stored complaint images
//
// Every request is logged through the zap middleware.
func NewRouter(
	authHandler *AuthHandler,
	complaintsHandler *ComplaintsHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Post("/complaintlogin/", authHandler.Login)
	r.Post("/addcomplaint/", complaintsHandler.Create)
	r.Get("/allcomplaints/", complaintsHandler.List)
	r.Get("/complaintdetails/{id}/", complaintsHandler.Details)
	r.Put("/updatecomplaint/{id}/", complaintsHandler.Update)

	// Serve stored complaint images.
	fs := http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(complaintsHandler.UploadDir)))
	r.Get("/uploads/*", fs.ServeHTTP)

	return r
}
