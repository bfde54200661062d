package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "taskplan API",
		Version:     "v1",
		Description: "In-memory task scheduler: dependency ordering, cycle detection and deadline-aware planning",
		Endpoints: []endpointInfo{
			{"/api/v1/tasks", []string{"GET", "POST"}, "List tasks by priority then deadline; add or replace a task"},
			{"/api/v1/tasks/{name}", []string{"GET", "DELETE"}, "Single task; DELETE succeeds for unknown names"},
			{"/api/v1/order", []string{"GET"}, "Dependency order of all tasks; 409 on a cycle"},
			{"/api/v1/schedule", []string{"GET"}, "Single-worker plan starting now; 409 on a cycle"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
