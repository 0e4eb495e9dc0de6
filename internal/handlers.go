package internal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/jointwt/ghuser/types"
)

// NotFoundHandler ...
func (s *Server) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Endpoint Not Found", http.StatusNotFound)
}

func writeError(w http.ResponseWriter, msg string, code int) {
	body, err := types.ErrorResponse{Error: msg}.Bytes()
	if err != nil {
		http.Error(w, msg, code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// UserHandler aggregates and returns the composite record of a user
func (s *Server) UserHandler() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		login := strings.TrimSpace(p.ByName("login"))
		if login == "" {
			writeError(w, "Bad Request", http.StatusBadRequest)
			return
		}

		res, err := s.aggregator.Aggregate(r.Context(), login)
		if err != nil {
			if errors.Is(err, &OrchestrationError{}) {
				log.WithError(err).Errorf("error aggregating user %s", login)
				writeError(w, "Service Unavailable", http.StatusServiceUnavailable)
				return
			}
			writeError(w, "Bad Request", http.StatusBadRequest)
			return
		}

		degraded := res.Degraded
		if degraded == nil {
			degraded = []string{}
		}

		body, err := types.CompositeResponse{User: res.User, Degraded: degraded, Tasks: res.Tasks}.Bytes()
		if err != nil {
			log.WithError(err).Error("error serializing response")
			writeError(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

// TaskHandler returns the state of a recently dispatched task
func (s *Server) TaskHandler() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		if s.dispatcher == nil {
			writeError(w, "Task Not Found", http.StatusNotFound)
			return
		}

		task, ok := s.dispatcher.Lookup(p.ByName("id"))
		if !ok {
			writeError(w, "Task Not Found", http.StatusNotFound)
			return
		}

		body, err := json.Marshal(task.Result())
		if err != nil {
			log.WithError(err).Error("error serializing response")
			writeError(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}
