package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "Initialization failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		if err := trace.Shutdown(context.Background()); err != nil {
			logger.Warn(context.Background(), "Tracer shutdown failed", "error", err)
		}
	}()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	compressOldLogs(ctx)

	data, err := loadPortfolio(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load ledger %q: %v\n", cfg.Ledger.Path, err)
		os.Exit(1)
	}

	rtr, sess := initializeRouter(ctx, cfg, data)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		fmt.Println("\nGoodbye!")
		cancel()
		os.Exit(0)
	}()

	fmt.Println("Portfolio analyst ready. Ask about your investments.")
	fmt.Println("Commands: 'stats' for the dashboard, 'clear' to reset history, 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		switch strings.ToLower(query) {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "clear":
			sess.Clear()
			fmt.Println("Conversation history cleared.")
			continue
		case "stats":
			stats := rtr.PortfolioStats(ctx)
			b, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				fmt.Println("Could not render stats:", err)
				continue
			}
			fmt.Println(string(b))
			continue
		}

		fmt.Println(rtr.RouteQuery(ctx, query))
	}
}
