package searcher

import (
	"github.com/pkg/errors"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // UCT exploration constant

const WIN = 1.0   // Reward for winning outcome
const LOSS = -WIN // Reward for loss outcome

var ErrInvalidHyperParameter = errors.New("invalid hyperparameter")

// HyperParameter tunes the AlphaZero search.
type HyperParameter struct {
	NumSimulation  int     `yaml:"num_simulation"`
	Epsilon        float64 `yaml:"epsilon"`         // weight of the Dirichlet noise in the prior
	DirichletAlpha float64 `yaml:"dirichlet_alpha"` // concentration of the noise
	CPuct          float64 `yaml:"c_puct"`
	// Temperature > 0 samples the move from visit^(1/T) instead of taking
	// the most visited child.
	Temperature float64 `yaml:"temperature"`
	// NoisePerSelection resamples noise at every selection step instead of
	// once per move at the root.
	NoisePerSelection bool `yaml:"noise_per_selection"`
}

// DefaultHyperParameter follows AlphaGo Zero.
func DefaultHyperParameter() HyperParameter {
	return HyperParameter{
		NumSimulation:  800,
		Epsilon:        0.25,
		DirichletAlpha: 0.03,
		CPuct:          1,
	}
}

// LightWeight is a cheap preset for smoke tests and samples.
func LightWeight() HyperParameter {
	param := DefaultHyperParameter()
	param.NumSimulation = 3
	return param
}

func (p HyperParameter) Validate() error {
	switch {
	case p.NumSimulation < 1:
		return errors.Wrapf(ErrInvalidHyperParameter, "num_simulation %d < 1", p.NumSimulation)
	case p.Epsilon < 0 || p.Epsilon > 1:
		return errors.Wrapf(ErrInvalidHyperParameter, "epsilon %v not in [0, 1]", p.Epsilon)
	case p.DirichletAlpha <= 0:
		return errors.Wrapf(ErrInvalidHyperParameter, "dirichlet_alpha %v <= 0", p.DirichletAlpha)
	case p.CPuct <= 0:
		return errors.Wrapf(ErrInvalidHyperParameter, "c_puct %v <= 0", p.CPuct)
	case p.Temperature < 0:
		return errors.Wrapf(ErrInvalidHyperParameter, "temperature %v < 0", p.Temperature)
	}
	return nil
}
