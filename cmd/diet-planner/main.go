package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"diet-planner/internal/app"
	"diet-planner/internal/config"
	"diet-planner/internal/llm"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/shared"
	"diet-planner/internal/web"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	textGen, err := llm.NewTextGenerator(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)
	dietPlanner := planner.NewPlanner(textGen, cfg.LLMProvider, recorder)
	application := app.NewApp(dietPlanner, recorder, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "generate":
		generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		profilePath := generateCmd.String("profile", "profile.yaml", "YAML file with the profile answers")
		outDir := generateCmd.String("out", ".", "Directory the text and PDF plans are written to")
		generateCmd.Parse(os.Args[2:])

		exitOnError(application.GeneratePlan(ctx, *profilePath, *outDir))
	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
		inPath := exportCmd.String("in", "", "Plain-text plan to export")
		name := exportCmd.String("name", "", "Name used in the file names")
		outDir := exportCmd.String("out", ".", "Directory the files are written to")
		exportCmd.Parse(os.Args[2:])

		if *inPath == "" {
			exportCmd.Usage()
			os.Exit(2)
		}
		exitOnError(application.ExportPlan(*inPath, *name, *outDir))
	case "serve":
		server := web.NewServer(dietPlanner, recorder, reg, cfg.ExportSecret)
		serve(ctx, cfg.Port, server.Routes())
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	log.Printf("Command failed: %v", err)
	msg, hint := shared.UserMessage(err)
	fmt.Fprintln(os.Stderr, msg)
	if hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	os.Exit(1)
}

func serve(ctx context.Context, port string, handler http.Handler) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		log.Printf("Diet planner listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func printUsage() {
	fmt.Println("Usage: diet-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate -profile FILE -out DIR     Generate a plan from a YAML profile")
	fmt.Println("  export -in FILE -name NAME -out DIR Export an existing plan as text and PDF")
	fmt.Println("  serve                               Run the web form on $PORT")
}
