package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/golemsfate/asset_pipeline/assetdb"
	"github.com/golemsfate/asset_pipeline/config"
	"github.com/golemsfate/asset_pipeline/status"
)

type Server struct {
	Config  *config.Pipeline
	Content *assetdb.Content
}

func NewServer(cfg *config.Pipeline) *Server {
	return &Server{Config: cfg, Content: assetdb.NewContent(cfg.ContentDir)}
}

func (s *Server) Router(webPath string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/keys", s.HandlerAjaxKeys).Methods("GET")
	r.HandleFunc("/json/plan", s.HandlerAjaxPlan).Methods("GET")
	r.HandleFunc("/json/materials", s.HandlerDumpMaterialMap).Methods("GET")
	r.HandleFunc("/json/status", HandlerAjaxStatus).Methods("GET")
	r.HandleFunc("/action/export/{character}/{scene}", s.HandlerActionExport).Methods("POST")
	r.HandleFunc("/action/sync", s.HandlerActionSync).Methods("POST")
	r.HandleFunc("/action/materials", s.HandlerActionMaterials).Methods("POST")
	r.HandleFunc("/ws/status", status.HandlerWebsocket)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))
	return r
}

func StartServer(addr string, s *Server, webPath string) error {
	r := s.Router(webPath)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
