package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"lessoncast/api"
	"lessoncast/auth"
	"lessoncast/config"
	"lessoncast/narration"
	"lessoncast/search"
	"lessoncast/store"
	"lessoncast/types"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	st, err := store.NewFromEnv()
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}

	sessions := auth.NewSessions(st)

	producer, err := narration.NewProducerFromEnv()
	if err != nil {
		log.Fatalf("failed to connect to Kafka: %v", err)
	}
	defer producer.Close()

	voices, err := config.LoadVoiceCatalog(config.GetEnvOrDefault("VOICES_FILE", "voices.yaml"))
	if err != nil {
		log.Fatalf("failed to load voice catalog: %v", err)
	}

	index := search.NewIndex(search.NewProviderFromEnv())
	buildIndex(st, index)

	r := api.NewRouter(api.Deps{
		Store:    st,
		Sessions: sessions,
		Jobs:     producer,
		Index:    index,
		Voices:   voices,
	})

	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup, /api/auth/login, /api/auth/logout")
	log.Println("  GET  /api/chapters, /api/chapters/:number")
	log.Println("  CRUD /api/sections, /api/questions (editor)")
	log.Println("  POST /api/sections/:id/narrate, /api/questions/:id/narrate (editor)")
	log.Println("  GET  /api/search?q=")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildIndex seeds the search index from every stored section at startup.
// Failures are logged, not fatal; search starts empty.
func buildIndex(st *store.Store, index *search.Index) {
	ctx := context.Background()
	chapters, err := st.ListChapters(ctx)
	if err != nil {
		log.Printf("Could not list chapters for search index: %v", err)
		return
	}

	var sections []*types.Section
	for _, ch := range chapters {
		secs, err := st.ListSections(ctx, ch.ID)
		if err != nil {
			log.Printf("Could not list sections of chapter %s: %v", ch.ID, err)
			continue
		}
		sections = append(sections, secs...)
	}

	index.Rebuild(ctx, sections)
	log.Printf("Search index ready with %d sections", index.Len())
}
