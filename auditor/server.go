package auditor

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// defaultEnumeration is how many addresses the addresses endpoint returns
// when the caller does not pass an explicit count.
const defaultEnumeration = 20

// maxEnumeration bounds a single request so a bad count cannot turn into
// millions of curve operations.
const maxEnumeration = 10000

type AuditServer struct {
	httpServer *http.Server
	auditor    *Auditor
	logger     *slog.Logger
}

type Config struct {
	Addr string
}

func SetupAuditServer(config Config, auditor *Auditor) *AuditServer {
	server := &AuditServer{
		auditor: auditor,
		logger:  slog.Default(),
	}
	server.setupHttpServer(config.Addr)
	return server
}

func StartAuditServer(server *AuditServer) {
	server.logger.Info("audit server listening on: " + server.httpServer.Addr)
	log.Fatal(server.httpServer.ListenAndServe())
}

func (as *AuditServer) setupHttpServer(addr string) {
	r := mux.NewRouter()

	r.HandleFunc("/v1/departments/{entity}/{department}/xpub", as.handleDepartmentXPub).Methods(http.MethodGet)
	r.HandleFunc("/v1/departments/{entity}/{department}/roles/{role}/xpub", as.handleRoleXPub).Methods(http.MethodGet)
	r.HandleFunc("/v1/departments/{entity}/{department}/addresses", as.handleAddresses).Methods(http.MethodGet)
	r.HandleFunc("/v1/exports", as.handleExports).Methods(http.MethodGet)

	as.httpServer = &http.Server{
		Addr:    addr,
		Handler: r,
	}
}

func (as *AuditServer) handleDepartmentXPub(rw http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	record, err := as.auditor.ExportDepartment(vars["entity"], vars["department"])
	if err != nil {
		as.logger.Error("department export failed: " + err.Error())
		http.Error(rw, "unable to export department key", http.StatusInternalServerError)
		return
	}
	as.writeJson(rw, record)
}

func (as *AuditServer) handleRoleXPub(rw http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	record, err := as.auditor.ExportRole(vars["entity"], vars["department"], vars["role"])
	if err != nil {
		as.logger.Error("role export failed: " + err.Error())
		http.Error(rw, "unable to export role key", http.StatusInternalServerError)
		return
	}
	as.writeJson(rw, record)
}

func (as *AuditServer) handleAddresses(rw http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	key := vars["entity"] + "/" + vars["department"]

	count := uint64(defaultEnumeration)
	if countParam := req.URL.Query().Get("count"); countParam != "" {
		var err error
		count, err = strconv.ParseUint(countParam, 10, 32)
		if err != nil || count > maxEnumeration {
			http.Error(rw, "invalid count", http.StatusBadRequest)
			return
		}
	}

	addresses, err := as.auditor.Addresses(key, uint32(count))
	if err != nil {
		if errors.Is(err, ErrExportNotFound) {
			http.Error(rw, "department not exported", http.StatusNotFound)
			return
		}
		as.logger.Error("address enumeration failed: " + err.Error())
		http.Error(rw, "unable to enumerate addresses", http.StatusInternalServerError)
		return
	}

	as.writeJson(rw, addressesResponse{Key: key, Addresses: addresses})
}

func (as *AuditServer) handleExports(rw http.ResponseWriter, req *http.Request) {
	as.writeJson(rw, as.auditor.Exports())
}

type addressesResponse struct {
	Key       string   `json:"key"`
	Addresses []string `json:"addresses"`
}

func (as *AuditServer) writeJson(rw http.ResponseWriter, v any) {
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		as.logger.Error("error writing response: " + err.Error())
	}
}
