package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"connect6/communication"
	"connect6/game"
	"connect6/searcher"
)

// ServerEvaluator exposes an Evaluator over HTTP.
type ServerEvaluator struct {
	evaluator searcher.Evaluator
}

// NewServerEvaluator initializes and returns a new ServerEvaluator.
func NewServerEvaluator(evaluator searcher.Evaluator) *ServerEvaluator {
	return &ServerEvaluator{evaluator: evaluator}
}

func (se *ServerEvaluator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+communication.EvaluatePath, se.handleEvaluate)
	return mux
}

// Start serves on addr until the listener fails.
func (se *ServerEvaluator) Start(addr string) error {
	log.Info().Msgf("evaluator server listening on %s", addr)
	return http.ListenAndServe(addr, se.Handler())
}

func writeJSON(w http.ResponseWriter, status int, payload communication.EvaluateResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("failed to encode evaluation")
	}
}

func (se *ServerEvaluator) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var request communication.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.EvaluateResponse{Error: "bad request: " + err.Error()})
		return
	}
	turn := game.PlayerFrom(request.Turn)
	if turn == game.None {
		writeJSON(w, http.StatusBadRequest, communication.EvaluateResponse{Error: "bad request: turn must be -1 or 1"})
		return
	}
	boards, err := communication.DecodeBoards(request.Boards)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, communication.EvaluateResponse{Error: "bad request: " + err.Error()})
		return
	}

	values, policies, err := se.evaluator.Evaluate(turn, boards)
	if err != nil {
		log.Warn().Err(err).Int("boards", len(boards)).Msg("evaluation failed")
		writeJSON(w, http.StatusInternalServerError, communication.EvaluateResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, communication.EvaluateResponse{
		Values:   values,
		Policies: communication.EncodePolicies(policies),
	})
}
