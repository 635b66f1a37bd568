package main

import (
	"log"
	"net/http"
	"os"

	"github.com/adaptest/backend/internal/auth"
	"github.com/adaptest/backend/internal/authoring"
	"github.com/adaptest/backend/internal/database"
	"github.com/adaptest/backend/internal/itembank"
	"github.com/adaptest/backend/internal/middleware"
	"github.com/adaptest/backend/internal/session"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(db)

	bankStore := itembank.NewStore(db)
	bankService := itembank.NewService(bankStore)
	bankHandler := itembank.NewHandler(bankService)

	sessionStore := session.NewStore(db)
	sessionService := session.NewService(sessionStore, bankStore)
	sessionHandler := session.NewHandler(sessionService)

	authoringService := authoring.NewService(authoring.NewGenerator(), bankStore)
	authoringHandler := authoring.NewHandler(authoringService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Item banks
	protected.HandleFunc("/banks", bankHandler.CreateBank).Methods("POST")
	protected.HandleFunc("/banks", bankHandler.ListBanks).Methods("GET")
	protected.HandleFunc("/banks/{id}", bankHandler.GetBank).Methods("GET")
	protected.HandleFunc("/banks/{id}/items", bankHandler.GetItems).Methods("GET")
	protected.HandleFunc("/banks/{id}/metrics", bankHandler.GetMetrics).Methods("GET")
	protected.HandleFunc("/banks/{id}/draft", authoringHandler.DraftItems).Methods("POST")
	protected.HandleFunc("/items/{id}/curve", bankHandler.GetItemCurve).Methods("GET")

	// Test sessions
	protected.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	protected.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods("GET")
	protected.HandleFunc("/sessions/{id}/responses", sessionHandler.RecordResponse).Methods("POST")
	protected.HandleFunc("/sessions/{id}/finalize", sessionHandler.Finalize).Methods("POST")
	protected.HandleFunc("/results/export", sessionHandler.ExportResults).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
