package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindspace-notes/mindspace/broker"
	"mindspace-notes/mindspace/config"
	"mindspace-notes/mindspace/database"
	"mindspace-notes/mindspace/middleware"
	"mindspace-notes/mindspace/routes"
	"mindspace-notes/mindspace/scheduler"
	"mindspace-notes/mindspace/services"
	"mindspace-notes/mindspace/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	noteStore, err := store.NewNoteStore(db)
	if err != nil {
		log.Fatalf("Failed to initialize note store: %v", err)
	}

	// Event publication degrades to logging when no broker is reachable.
	producer, err := broker.NewNatsProducer(cfg.NatsURL)
	if err != nil {
		log.Printf("Warning: failed to connect to NATS: %v", err)
		log.Println("The application will continue with local-only event delivery")
		producer = broker.NewLogProducer()
	} else {
		stopNotifier, err := broker.StartNotificationConsumer(cfg.NatsURL)
		if err != nil {
			log.Printf("Warning: failed to start notification consumer: %v", err)
		} else {
			defer stopNotifier()
		}
	}
	defer producer.Close()

	timerScheduler := scheduler.NewTimerScheduler(db)

	noteService := services.NewNoteService(noteStore, producer)
	trashService := services.NewTrashService(noteStore, producer, timerScheduler)
	notificationService := services.NewNotificationService(producer)
	reminderService := services.NewReminderService(noteStore, notificationService, timerScheduler, producer)

	timerScheduler.SetHandler(func(noteID uint) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		reminderService.Deliver(ctx, noteID)
	})
	if err := timerScheduler.Start(); err != nil {
		log.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer timerScheduler.Stop()

	// Retention sweep at startup, then on an interval.
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	trashService.RunSweep(sweepCtx)
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.SweepIntervalHours) * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				trashService.RunSweep(sweepCtx)
			}
		}
	}()

	webSocketService := services.NewWebSocketService(noteStore)
	webSocketService.Start()
	defer webSocketService.Stop()

	authService := services.NewAuthService(cfg.AuthPasswordHash, cfg.JWTSecret, cfg.JWTExpirationHours)
	if !authService.Enabled() {
		log.Println("AUTH_PASSWORD_HASH not set, API authentication is disabled")
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterAuthRoutes(router, authService)
	routes.RegisterWebSocketRoutes(router, authService, webSocketService)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(authService))
	routes.RegisterNoteRoutes(api, noteService)
	routes.RegisterTrashRoutes(api, trashService)
	routes.RegisterReminderRoutes(api, reminderService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		cancelSweep()
		timerScheduler.Stop()
		webSocketService.Stop()
		producer.Close()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
