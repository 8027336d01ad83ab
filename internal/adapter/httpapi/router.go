package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the portal's HTTP surface. Every transaction route
// sits behind the session auth middleware; health stays open for probes.
func NewRouter(handlers *Handlers, jwtSecret string) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(Auth(jwtSecret))

	api.HandleFunc("/accounts", handlers.ListAccounts).Methods(http.MethodGet)
	api.HandleFunc("/transfers", handlers.ExecuteTransfer).Methods(http.MethodPost)
	api.HandleFunc("/deposits", handlers.ExecuteDeposit).Methods(http.MethodPost)

	return router
}
