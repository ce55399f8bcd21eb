package main

import (
	"log"
	"time"

	"wardrobeapi/dbhelper"
	"wardrobeapi/outfits"
	"wardrobeapi/services"
	"wardrobeapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
)

func runScheduler(redis asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redis, &asynq.SchedulerOpts{
		LogLevel: asynq.InfoLevel,
	})

	entries := []struct {
		cron string
		task *asynq.Task
		desc string
	}{
		{
			cron: tasks.DailyOutfitCron,
			task: tasks.NewDailyOutfitFanoutTask(),
			desc: "Daily outfit fanout",
		},
	}

	for _, t := range entries {
		entryID, err := scheduler.Register(t.cron, t.task, asynq.Queue(tasks.QueueOutfits))
		if err != nil {
			log.Fatalf("Failed to register task '%s': %v", t.desc, err)
		}
		log.Printf("Registered task '%s' with ID: %s, cron: %s", t.desc, entryID, t.cron)
	}

	log.Println("Starting scheduler...")
	if err := scheduler.Run(); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}

func main() {
	cfg := services.LoadConfig()
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Env,
		Release:     "wardrobeapi-worker@1.0.0",
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Flush(2 * time.Second)

	redis := asynq.RedisClientOpt{Addr: cfg.BrokerAddress}
	srv := asynq.NewServer(
		redis,
		asynq.Config{Concurrency: 10, Queues: map[string]int{
			tasks.QueueOutfits: 7,
			"default":          3,
		}},
	)
	client := asynq.NewClient(redis)
	defer client.Close()

	db := dbhelper.SetupDB()
	handler := &tasks.DailyOutfitHandler{
		Store:     services.NewGormWardrobeStore(db),
		Weather:   services.NewOpenMeteoService(cfg.WeatherBaseURL),
		Generator: outfits.NewGenerator(),
		Metrics:   services.NewOutfitMetrics(nil),
		Enqueuer:  client,
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDailyOutfitFanout, handler.HandleFanout)
	mux.HandleFunc(tasks.TypeDailyOutfit, handler.HandleDailyOutfit)

	go runScheduler(redis)
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
