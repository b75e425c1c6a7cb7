package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"connect6/game"
)

type AgentConfig struct {
	ID            int
	Color         int    // game.Player value the agent plays
	Policy        string // alphazero, uct or random
	NumSimulation int
	Epsilon       float64
	CPuct         float64
	Temperature   float64
	Iterations    int // uct only
}

type GameRecord struct {
	ID int
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// PathRecord is one training sample: the board before a move, the mover,
// the move and the final winner of the game.
type PathRecord struct {
	Game   int // GameRecord.ID
	Step   int
	Turn   int // game.Player value
	Row    int
	Col    int
	Winner int
	Board  game.Board
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s header", name)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s rows", name)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "color", "policy", "num_simulation", "epsilon", "c_puct", "temperature", "iterations"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Color),
			config.Policy,
			strconv.Itoa(config.NumSimulation),
			formatFloat(config.Epsilon),
			formatFloat(config.CPuct),
			formatFloat(config.Temperature),
			strconv.Itoa(config.Iterations),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Winner),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "row", "col", "simulations", "duration", "episodes", "terminals", "tree_size", "is_tree_reset"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Row),
			strconv.Itoa(record.Col),
			strconv.Itoa(record.Simulations),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Terminals),
			strconv.Itoa(record.TreeSize),
			strconv.FormatBool(record.IsTreeReset),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WritePathRecords(records []PathRecord) error {
	header := []string{"game", "step", "turn", "row", "col", "winner", "board"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Turn),
			strconv.Itoa(record.Row),
			strconv.Itoa(record.Col),
			strconv.Itoa(record.Winner),
			EncodeBoard(&record.Board),
		})
	}
	return w.write("path_records.csv", header, rows)
}

// EncodeBoard writes the board row-major, one character per cell:
// 'b' for Black, 'w' for White and '.' for empty.
func EncodeBoard(board *game.Board) string {
	var sb strings.Builder
	sb.Grow(game.Capacity)
	for row := range board {
		for col := range board[row] {
			switch board[row][col] {
			case game.Black:
				sb.WriteByte('b')
			case game.White:
				sb.WriteByte('w')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
