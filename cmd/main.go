package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"presentation-web-server/config"
	_ "presentation-web-server/docs"
	"presentation-web-server/internal/handler"
	"presentation-web-server/internal/repository"
	"presentation-web-server/internal/security"
	"presentation-web-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Presentation-web-server
// @version 1.0
// @description REST API для живого показа презентаций: сессии с join-кодом,
// документы, чат и коммерческие приглашения

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	viewerRepo := repository.NewViewerRepository(db)
	cursorRepo := repository.NewCursorRepository(db)
	collaboratorRepo := repository.NewCollaboratorRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	chatRepo := repository.NewChatRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.Snapshot)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	presignTTL := time.Duration(cfg.TTL.Presign) * time.Second

	jwtService := security.NewJWTService(&cfg.JWT)
	verifier := security.NewUserinfoVerifier(&cfg.OAuth)
	resolver := security.NewAuthResolver(verifier, userRepo, invitationRepo, jwtService, db, &cfg.OAuth)

	userService := service.NewUserService(userRepo)
	sessionService := service.NewSessionService(sessionRepo, docRepo, viewerRepo, cursorRepo, cacheRepo)
	docService := service.NewDocumentService(docRepo, sessionRepo, collaboratorRepo, cacheRepo, s3Service, &cfg.Upload, presignTTL)
	viewerService := service.NewViewerService(sessionRepo, docRepo, viewerRepo, cursorRepo, cacheRepo)
	chatService := service.NewChatService(chatRepo, sessionRepo, s3Service, &cfg.Upload)
	collaborationService := service.NewCollaborationService(collaboratorRepo, sessionRepo, userRepo)
	invitationService := service.NewInvitationService(invitationRepo)

	authHandler := handler.NewAuthHandler(userService, jwtService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	docHandler := handler.NewDocumentHandler(docService, &cfg.Upload)
	viewerHandler := handler.NewViewerHandler(viewerService)
	chatHandler := handler.NewChatHandler(chatService, &cfg.Upload)
	collaborationHandler := handler.NewCollaborationHandler(collaborationService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	adminHandler := handler.NewAdminHandler(userService)
	proxyHandler := handler.NewProxyHandler(&cfg.Proxy)

	router.Use(config.DBMiddleware(db))
	router.Use(resolver.Middleware())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler)
	setupSessionRoutes(router, sessionHandler, docHandler, chatHandler, collaborationHandler)
	setupDocumentRoutes(router, docHandler)
	setupViewerRoutes(router, viewerHandler)
	setupInvitationRoutes(router, invitationHandler)
	setupAdminRoutes(router, adminHandler)

	router.Get("/proxy/image", proxyHandler.ProxyImage)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthHandler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(security.RequireAuth)
			r.Get("/me", h.Me)
		})
	})
}

func setupSessionRoutes(
	r chi.Router,
	sessions *handler.SessionHandler,
	docs *handler.DocumentHandler,
	chat *handler.ChatHandler,
	collaboration *handler.CollaborationHandler,
) {
	r.Route("/api/sessions", func(r chi.Router) {
		// чат читают и пишут зрители без авторизации
		r.Get("/{session_id}/chat", chat.GetMessages)
		r.Post("/{session_id}/chat", chat.SendMessage)
		r.Post("/{session_id}/chat/attachment", chat.UploadAttachment)
		r.Get("/{session_id}/cursor", sessions.GetCursor)

		r.Group(func(r chi.Router) {
			r.Use(security.RequireAuth)

			r.Post("/", sessions.CreateSession)
			r.Get("/", sessions.ListSessions)

			r.Route("/{session_id}", func(r chi.Router) {
				r.Put("/display", sessions.DisplayDocument)
				r.Put("/title", sessions.UpdateTitle)
				r.Post("/end", sessions.EndSession)
				r.Get("/viewers", sessions.GetViewerCount)
				r.Put("/cursor", sessions.UpdateCursor)
				r.Delete("/chat", chat.ClearMessages)

				r.Get("/documents", docs.ListDocuments)
				r.Post("/documents", docs.UploadDocument)
				r.Put("/documents/reorder", docs.ReorderDocuments)

				r.Get("/collaborators", collaboration.ListCollaborators)
				r.Post("/collaborators", collaboration.InviteCollaborator)
				r.Post("/collaborators/respond", collaboration.RespondInvitation)
			})
		})
	})
}

func setupDocumentRoutes(r chi.Router, h *handler.DocumentHandler) {
	r.Route("/api/documents", func(r chi.Router) {
		r.Use(security.RequireAuth)
		r.Delete("/{doc_id}", h.DeleteDocument)
		r.Get("/{doc_id}/download", h.GetDownloadURL)
	})
}

func setupViewerRoutes(r chi.Router, h *handler.ViewerHandler) {
	r.Route("/view/{code}", func(r chi.Router) {
		r.Get("/", h.GetSnapshot)
		r.Post("/join", h.JoinSession)
		r.Put("/cursor", h.UpdateViewerCursor)
	})
}

func setupInvitationRoutes(r chi.Router, h *handler.InvitationHandler) {
	r.Route("/api/invitations", func(r chi.Router) {
		r.Post("/redeem", h.RedeemInvitation)

		r.Group(func(r chi.Router) {
			r.Use(security.RequireAuth)
			r.Post("/", h.CreateInvitation)
			r.Get("/", h.ListInvitations)
			r.Delete("/{invitation_id}", h.RevokeInvitation)
		})
	})
}

func setupAdminRoutes(r chi.Router, h *handler.AdminHandler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(security.RequireAdmin)
		r.Get("/users", h.ListUsers)
		r.Put("/users/{user_id}/role", h.SetRole)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
