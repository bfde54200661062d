package server

import "net/http"

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	order, err := s.sched.TopologicalOrder()
	if err != nil {
		respondSchedulerError(w, reqID, err)
		return
	}
	respondList(w, reqID, order, len(order))
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	plan, err := s.sched.Plan()
	if err != nil {
		s.logger.Warn("schedule failed", "error", err)
		respondSchedulerError(w, reqID, err)
		return
	}
	respondOK(w, reqID, plan)
}
