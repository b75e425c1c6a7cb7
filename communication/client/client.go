package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"connect6/communication"
	"connect6/game"
	"connect6/searcher"
)

// ClientEvaluator forwards evaluations to a remote evaluator service.
type ClientEvaluator struct {
	serverURL string
	client    *http.Client
}

// NewClientEvaluator initializes and returns a new ClientEvaluator.
func NewClientEvaluator(serverURL string, timeout time.Duration) *ClientEvaluator {
	return &ClientEvaluator{
		serverURL: serverURL,
		client:    &http.Client{Timeout: timeout},
	}
}

func unavailable(err error, msg string) error {
	return errors.Wrapf(searcher.ErrEvaluatorUnavailable, "%s: %v", msg, err)
}

func (ce *ClientEvaluator) Evaluate(turn game.Player, boards []game.Board) ([]float64, []game.Probs, error) {
	data, err := json.Marshal(communication.EvaluateRequest{
		Turn:   int(turn),
		Boards: communication.EncodeBoards(boards),
	})
	if err != nil {
		return nil, nil, unavailable(err, "encode request")
	}

	resp, err := ce.client.Post(ce.serverURL+communication.EvaluatePath, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, nil, unavailable(err, "post")
	}
	defer resp.Body.Close()

	var payload communication.EvaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil, unavailable(err, "decode response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, errors.Wrapf(searcher.ErrEvaluatorUnavailable, "status %d: %s", resp.StatusCode, payload.Error)
	}

	policies, err := communication.DecodePolicies(payload.Policies)
	if err != nil {
		return nil, nil, unavailable(err, "decode policies")
	}
	if len(payload.Values) != len(boards) || len(policies) != len(boards) {
		return nil, nil, errors.Wrapf(searcher.ErrEvaluatorUnavailable,
			"expected %d answers, got %d values and %d policies", len(boards), len(payload.Values), len(policies))
	}
	return payload.Values, policies, nil
}
