package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"talent-pipeline/pipeline"
)

// BoardSync keeps a local pipeline.Board in step with the server. Moves are
// shown immediately and then confirmed or rolled back by the server's answer.
type BoardSync struct {
	client *Client
	board  *pipeline.Board
	names  map[string]string
	log    *zap.Logger
}

func NewBoardSync(c *Client) *BoardSync {
	return &BoardSync{client: c, board: pipeline.NewBoard(), names: map[string]string{}, log: c.logger}
}

// Refresh replaces the local board with the server's pipeline.
func (s *BoardSync) Refresh(ctx context.Context) error {
	cols, err := s.client.Pipeline(ctx)
	if err != nil {
		return fmt.Errorf("loading pipeline: %w", err)
	}

	board := pipeline.NewBoard()
	names := map[string]string{}
	for _, col := range cols {
		for _, c := range col.Candidates {
			board.Load(c.ID, col.Stage)
			names[c.ID] = label(c.First(), c.LastName, c.Email)
		}
	}
	s.board = board
	s.names = names
	return nil
}

// Move shows id in stage to, sends the change and reconciles the board with
// the result. On failure the last confirmed stage is restored and the server
// error is returned.
func (s *BoardSync) Move(ctx context.Context, id string, to pipeline.Stage) (pipeline.Stage, error) {
	m, err := s.board.Move(id, to)
	if err != nil {
		return "", err
	}

	updated, err := s.client.UpdateStage(ctx, id, string(to))
	if err != nil {
		s.board.Rollback(m)
		shown, _ := s.board.Stage(id)
		s.log.Warn("stage change rejected, rolled back",
			zap.String("candidate_id", id),
			zap.String("to", string(to)),
			zap.String("shown", string(shown)),
			zap.Error(err),
		)
		return shown, err
	}

	server := to
	if updated.PipelineStage != nil {
		server = *updated.PipelineStage
	}
	if !s.board.Confirm(m, server) {
		s.log.Debug("stale stage confirmation ignored", zap.String("candidate_id", id))
	}
	shown, _ := s.board.Stage(id)
	return shown, nil
}

// Board returns the local board.
func (s *BoardSync) Board() *pipeline.Board {
	return s.board
}

// Name returns the display label of a candidate loaded by Refresh.
func (s *BoardSync) Name(id string) string {
	if n, ok := s.names[id]; ok {
		return n
	}
	return id
}

func label(first string, last *string, email string) string {
	name := first
	if last != nil && *last != "" {
		if name != "" {
			name += " "
		}
		name += *last
	}
	if name == "" {
		return email
	}
	return name + " <" + email + ">"
}
