// Package meta holds the defaults shared by the command and its config.
package meta

import "time"

// GAMES is the number of self-play games per batch.
const GAMES = 8

// SEED is the base seed; game i uses SEED+i.
const SEED = 1

// POLICY is the policy used when the config names none.
const POLICY = "alphazero"

// UCT_ITERATIONS is the number of pure MCTS iterations per move.
const UCT_ITERATIONS = 50

// EVALUATOR_TIMEOUT bounds a single remote evaluation.
const EVALUATOR_TIMEOUT = 5 * time.Second

// OUTPUT is the directory experiment records are written under.
const OUTPUT = "experiments/selfplay"

// LOG_LEVEL is the zerolog level name.
const LOG_LEVEL = "info"

// SERVER_ADDR is the default listen address of the evaluator server.
const SERVER_ADDR = ":8080"
