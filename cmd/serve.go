package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsalens/dsalens/internal/server"
	"github.com/dsalens/dsalens/internal/ui"
	"github.com/dsalens/dsalens/llm"
	"github.com/dsalens/dsalens/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	Long: `Serve exposes the analysis and history operations over HTTP for
editor plugins and browser tooling. The listener binds to the loopback
interface by default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		addr := serveAddr
		if addr == "" {
			addr = config.Serve.Addr
		}

		kv, err := GetKeyValue()
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		provider, err := llm.NewProvider(&config.LLM)
		if err != nil {
			return err
		}

		srv := server.New(addr, provider, store.NewHistoryStore(kv), store.NewCredentialStore(kv))

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)

		fmt.Println(ui.StyleSuccess.Render("Listening on http://" + addr))

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errChan:
			return err
		case <-sigChan:
			fmt.Println(ui.StyleSubtle.Render("Shutting down..."))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		wg.Wait()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8440)")
}
