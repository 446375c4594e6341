package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/matt-g-everett/ledtween/scene"
)

// Api serves a read-only JSON view of a scene.
type Api struct {
	doc  *scene.Document
	addr string
}

// NewApi creates an Api for doc listening on addr.
func NewApi(doc *scene.Document, addr string) *Api {
	a := new(Api)
	a.doc = doc
	a.addr = addr
	return a
}

// Handler returns the HTTP routes.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/elements", a.handleElements)
	return mux
}

func (a *Api) handleElements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.doc.Snapshot()); err != nil {
		log.Println(err)
	}
}

// Serve listens until the server fails.
func (a *Api) Serve() error {
	log.Printf("Listening on %s...", a.addr)
	return http.ListenAndServe(a.addr, a.Handler())
}
