package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/dsalens/dsalens/llm"
	"github.com/dsalens/dsalens/store"
)

// Server exposes the analysis and history operations over HTTP for
// local tooling (editor plugins, browser extensions).
type Server struct {
	provider llm.Provider
	history  *store.HistoryStore
	creds    *store.CredentialStore
	addr     string
	server   *http.Server
}

// New builds a server around an already-initialized provider and stores.
// The caller owns the underlying KeyValue and closes it after Shutdown.
func New(addr string, provider llm.Provider, history *store.HistoryStore, creds *store.CredentialStore) *Server {
	s := &Server{
		provider: provider,
		history:  history,
		creds:    creds,
		addr:     addr,
	}
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.registerRoutes(),
	}
	return s
}

// Start runs the listener on its own goroutine, reporting a failed
// listen through errChan.
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
