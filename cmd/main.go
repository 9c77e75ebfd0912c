package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gorilla/mux"
	"github.com/w-h-a/answerbot"
	"github.com/w-h-a/answerbot/embedder"
	googleembedder "github.com/w-h-a/answerbot/embedder/google"
	openaiembedder "github.com/w-h-a/answerbot/embedder/openai"
	"github.com/w-h-a/answerbot/generator"
	"github.com/w-h-a/answerbot/generator/anthropic"
	"github.com/w-h-a/answerbot/generator/google"
	"github.com/w-h-a/answerbot/generator/openai"
	chathandler "github.com/w-h-a/answerbot/internal/handler/chat"
	"github.com/w-h-a/answerbot/retriever"
	"github.com/w-h-a/answerbot/retriever/memory"
	"github.com/w-h-a/answerbot/retriever/postgres"
	"github.com/w-h-a/answerbot/retriever/qdrant"
	"github.com/w-h-a/answerbot/server"
	httpserver "github.com/w-h-a/answerbot/server/http"
)

var (
	cfg struct {
		// Generator config
		Provider        string  `help:"Completion provider" enum:"openai,azure,anthropic,google" default:"openai" env:"ANSWERBOT_PROVIDER"`
		APIKey          string  `help:"API key for the completion provider" default:"" env:"ANSWERBOT_API_KEY"`
		Model           string  `help:"Model or Azure deployment for completions" default:"gpt-3.5-turbo" env:"ANSWERBOT_MODEL"`
		Endpoint        string  `help:"Base URL of the completion provider" default:"" env:"ANSWERBOT_ENDPOINT"`
		AzureAPIVersion string  `help:"Azure OpenAI API version" default:"2024-02-01" env:"ANSWERBOT_AZURE_API_VERSION"`
		MaxTokens       int     `help:"Maximum tokens per completion" default:"1024" env:"ANSWERBOT_MAX_TOKENS"`
		Temperature     float32 `help:"Sampling temperature" default:"0" env:"ANSWERBOT_TEMPERATURE"`

		// Embedder config
		Embedder       string `help:"Query embedding provider" enum:"none,openai,google" default:"none" env:"ANSWERBOT_EMBEDDER"`
		EmbedderModel  string `help:"Model identifier for query embeddings" default:"text-embedding-3-small" env:"ANSWERBOT_EMBEDDER_MODEL"`
		EmbedderAPIKey string `help:"API key for the embedding provider, defaults to --api-key" default:"" env:"ANSWERBOT_EMBEDDER_API_KEY"`

		// Retriever config
		Retriever         string  `help:"Document retriever" enum:"memory,postgres,qdrant" default:"memory" env:"ANSWERBOT_RETRIEVER"`
		RetrieverLocation string  `help:"Address of the document store" default:"" env:"ANSWERBOT_RETRIEVER_LOCATION"`
		RetrieverAPIKey   string  `help:"API key for the document store" default:"" env:"ANSWERBOT_RETRIEVER_API_KEY"`
		Collection        string  `help:"Table or collection holding the documents" default:"" env:"ANSWERBOT_COLLECTION"`
		Documents         string  `help:"YAML file of documents for the memory retriever" default:"" env:"ANSWERBOT_DOCUMENTS"`
		Relevance         float64 `help:"Relevance weight of the memory retriever's diversity re-rank" default:"0.7" env:"ANSWERBOT_RELEVANCE"`

		// Citation config
		CitationBaseURL  string `help:"Base URL prepended to cited document names" default:"" env:"ANSWERBOT_CITATION_BASE_URL"`
		StorageAccount   string `help:"Blob storage account holding the cited documents" default:"" env:"ANSWERBOT_STORAGE_ACCOUNT"`
		StorageContainer string `help:"Blob storage container holding the cited documents" default:"" env:"ANSWERBOT_STORAGE_CONTAINER"`

		// Server config
		Address  string `help:"Address to listen on" default:":8080" env:"ANSWERBOT_ADDRESS"`
		LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"ANSWERBOT_LOG_LEVEL"`
	}
)

func main() {
	// Parse inputs
	_ = kong.Parse(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up logging
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Create collaborators
	gen := newGenerator()
	emb := newEmbedder()
	re := newRetriever(ctx, emb)

	// Create bot
	opts := []answerbot.Option{
		answerbot.WithCitationBaseURL(answerbot.CitationBaseURL(cfg.StorageAccount, cfg.StorageContainer, cfg.CitationBaseURL)),
	}
	if emb != nil {
		opts = append(opts, answerbot.WithEmbedder(emb))
	}

	bot := answerbot.New(gen, re, opts...)

	// Create server
	router := mux.NewRouter()
	chathandler.NewHandler(bot).Routes(router)

	srv := httpserver.NewServer(
		server.WithName("answerbot"),
		server.WithAddress(cfg.Address),
		httpserver.WithTimeouts(httpserver.Timeouts{
			ReadHeader: 10 * time.Second,
			Read:       30 * time.Second,
			Idle:       2 * time.Minute,
		}),
	)

	if err := srv.Handle(router); err != nil {
		slog.ErrorContext(ctx, "failed to register handler", "error", err)
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		slog.ErrorContext(ctx, "failed to start server", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(shutdown); err != nil {
		slog.ErrorContext(shutdown, "failed to stop server", "error", err)
	}
}

func newGenerator() generator.Generator {
	opts := []generator.Option{
		generator.WithApiKey(cfg.APIKey),
		generator.WithModel(cfg.Model),
		generator.WithLocation(cfg.Endpoint),
		generator.WithMaxTokens(cfg.MaxTokens),
		generator.WithTemperature(cfg.Temperature),
	}

	switch cfg.Provider {
	case "azure":
		return openai.NewGenerator(append(opts, openai.WithAzure(cfg.AzureAPIVersion))...)
	case "anthropic":
		return anthropic.NewGenerator(opts...)
	case "google":
		return google.NewGenerator(opts...)
	default:
		return openai.NewGenerator(opts...)
	}
}

func newEmbedder() embedder.Embedder {
	apiKey := cfg.EmbedderAPIKey
	if len(apiKey) == 0 {
		apiKey = cfg.APIKey
	}

	opts := []embedder.Option{
		embedder.WithApiKey(apiKey),
		embedder.WithModel(cfg.EmbedderModel),
	}

	switch cfg.Embedder {
	case "openai":
		return openaiembedder.NewEmbedder(opts...)
	case "google":
		return googleembedder.NewEmbedder(opts...)
	default:
		return nil
	}
}

func newRetriever(ctx context.Context, emb embedder.Embedder) retriever.Retriever {
	opts := []retriever.Option{
		retriever.WithLocation(cfg.RetrieverLocation),
		retriever.WithApiKey(cfg.RetrieverAPIKey),
		retriever.WithCollection(cfg.Collection),
	}

	switch cfg.Retriever {
	case "postgres":
		return postgres.NewRetriever(opts...)
	case "qdrant":
		if emb != nil {
			opts = append(opts, qdrant.WithEmbedder(emb))
		}
		return qdrant.NewRetriever(opts...)
	default:
		var docs []memory.Document
		if len(cfg.Documents) > 0 {
			var err error
			docs, err = memory.LoadDocuments(cfg.Documents)
			if err != nil {
				detail := "failed to load documents for memory retriever"
				slog.ErrorContext(ctx, detail, "error", err, "path", cfg.Documents)
				panic(detail)
			}
		}
		return memory.NewRetriever(append(opts,
			memory.WithDocuments(docs...),
			memory.WithRelevance(cfg.Relevance),
		)...)
	}
}
