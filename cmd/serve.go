package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/smartsupport/internal/documents"
	"github.com/ziadkadry99/smartsupport/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SmartSupport HTTP server",
	Long:  `Starts the HTTP server with the chat API, knowledge-base management endpoints and the prompt catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := buildStack()
		if err != nil {
			return err
		}

		port := st.cfg.Port
		if servePort != 0 {
			port = servePort
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: st.cfg.AllowAllOrigins,
		}, st.chat, st.ingestor, st.store)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Watch the knowledge directory if one is configured.
		if st.cfg.KnowledgeDir != "" {
			watcher, err := documents.NewWatcher(st.ingestor)
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			defer watcher.Close()
			go func() {
				if err := watcher.Watch(ctx, st.cfg.KnowledgeDir); err != nil && ctx.Err() == nil {
					log.Printf("knowledge watcher stopped: %v", err)
				}
			}()
		}

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "smartsupport v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Model: %s\n", st.cfg.Model)
		fmt.Fprintf(os.Stderr, "  Chunks indexed: %d\n", st.store.Stats().Count)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
