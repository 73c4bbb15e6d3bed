package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lessoncast/media"
	"lessoncast/narration"
	"lessoncast/store"
	"lessoncast/tts"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.NewFromEnv()
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}

	mediaStore, err := media.NewStoreFromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to configure media store: %v", err)
	}

	synth, err := tts.NewClientFromEnv()
	if err != nil {
		log.Fatalf("failed to configure synthesizer: %v", err)
	}

	worker := narration.NewWorker(st, mediaStore, synth)

	consumer, err := narration.NewConsumerFromEnv(worker)
	if err != nil {
		log.Fatalf("failed to connect to Kafka: %v", err)
	}
	defer consumer.Close()

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("failed to start narration consumer: %v", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Println("Shutting down narration worker...")
	cancel()
}
