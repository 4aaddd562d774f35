package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"lms-backend/handlers"
	"lms-backend/middleware"
	"lms-backend/store"
	"lms-backend/workers"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// ============================================
	// DATABASE CONFIGURATION
	// ============================================
	dbUser := getEnv("DB_USER", "root")
	dbPass := getEnv("DB_PASS", "")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "3306")
	dbName := getEnv("DB_NAME", "lms")

	// DSN format: user:password@tcp(host:port)/dbname?parseTime=true
	dsn := dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?parseTime=true"

	st, err := store.NewMySQLStore(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer st.Close()

	if err := st.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	log.Println("Connected to MySQL database")

	// ============================================
	// HANDLERS INITIALIZATION
	// ============================================
	authHandler := handlers.NewAuthHandler(st)
	adminHandler := handlers.NewAdminHandler(st)
	bookHandler := handlers.NewBookHandler(st)
	borrowHandler := handlers.NewBorrowHandler(st)
	memberHandler := handlers.NewMemberHandler(st)

	// Background fine sweeper
	sweeper := workers.NewOverdueSweeper(st)
	sweeper.Start()
	defer sweeper.Stop()

	// Middleware chains
	auth := middleware.AuthMiddleware
	adminOnly := func(h http.Handler) http.Handler {
		return auth(middleware.RequireRole(st, "admin")(h))
	}

	// ============================================
	// ROUTES SETUP
	// ============================================
	mux := http.NewServeMux()

	// Accounts
	mux.HandleFunc("/api/users/signup", authHandler.Signup)
	mux.HandleFunc("/api/users/login", authHandler.Login)
	mux.Handle("/api/users/admin-dashboard", auth(http.HandlerFunc(authHandler.AdminDashboard)))
	mux.Handle("/api/users/dashboard", auth(http.HandlerFunc(authHandler.Dashboard)))

	// Admin account management
	mux.Handle("/api/admin/users", adminOnly(http.HandlerFunc(adminHandler.UsersCollection)))
	mux.Handle("/api/admin/users/", adminOnly(http.HandlerFunc(adminHandler.UsersItem)))

	// Admin member management
	mux.Handle("/api/admin/members", adminOnly(http.HandlerFunc(memberHandler.MembersCollection)))
	mux.Handle("/api/admin/members/", adminOnly(http.HandlerFunc(memberHandler.MembersItem)))

	// Catalog. Listing is public, mutation is admin-only.
	listBooks := middleware.OptionalAuthMiddleware(http.HandlerFunc(bookHandler.ListBooks))
	createBook := adminOnly(http.HandlerFunc(bookHandler.CreateBook))
	mux.Handle("/api/books", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createBook.ServeHTTP(w, r)
		case http.MethodGet:
			listBooks.ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	mux.Handle("/api/books/search", auth(http.HandlerFunc(bookHandler.SearchBooks)))
	mux.Handle("/api/books/", adminOnly(http.HandlerFunc(bookHandler.BookItem)))

	// Borrow workflow
	mux.Handle("/api/borrow/request", auth(http.HandlerFunc(borrowHandler.RequestBorrow)))
	mux.Handle("/api/borrow/request/", adminOnly(http.HandlerFunc(borrowHandler.DecideBorrow)))
	mux.Handle("/api/borrow/return/", adminOnly(http.HandlerFunc(borrowHandler.ReturnBook)))
	mux.Handle("/api/borrow/my-borrows", auth(http.HandlerFunc(borrowHandler.MyBorrows)))
	mux.Handle("/api/borrow/admin/borrows", adminOnly(http.HandlerFunc(borrowHandler.AdminBorrows)))

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(); err != nil {
			http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	})

	// Root index
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Library Management API","endpoints":["/api/users","/api/admin/users","/api/books","/api/borrow","/health"]}`))
	})

	handler := middleware.Recover(middleware.Logging(mux))

	// ============================================
	// SERVER CONFIGURATION
	// ============================================
	port := getEnv("PORT", "8080")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Server running on http://localhost:%s", port)
	log.Fatal(srv.ListenAndServe())
}
