package watch

import (
	"context"

	"go.uber.org/zap"

	"github.com/vango-dev/routegen/internal/generate"
	"github.com/vango-dev/routegen/internal/logger"
)

// Regenerator is the generation pass repeated on every change batch.
type Regenerator interface {
	Run(ctx context.Context) (*generate.Result, error)
}

// Session reruns generation on change batches and reports each outcome to
// the health endpoint and live-reload clients.
type Session struct {
	gen    Regenerator
	reload *ReloadServer
	server *Server
	log    *zap.Logger
}

// NewSession creates a session. reload and server may be nil.
func NewSession(gen Regenerator, reload *ReloadServer, server *Server, log *zap.Logger) *Session {
	return &Session{gen: gen, reload: reload, server: server, log: logger.OrNop(log)}
}

// Regenerate runs one generation pass for a batch of changes.
func (s *Session) Regenerate(ctx context.Context, changes []Change) (*generate.Result, error) {
	if len(changes) > 0 {
		paths := make([]string, 0, len(changes))
		for _, c := range changes {
			paths = append(paths, c.Path)
		}
		s.log.Debug("changes detected", zap.Strings("paths", paths))
	}

	result, err := s.gen.Run(ctx)

	status := generate.StatusFatal.String()
	if result != nil {
		status = result.Status.String()
	}
	if s.server != nil {
		s.server.RecordRun(status, err)
	}
	if s.reload != nil {
		if err != nil {
			s.reload.NotifyError(err.Error())
		} else {
			s.reload.NotifyRoutes(result.Files)
		}
	}
	return result, err
}
