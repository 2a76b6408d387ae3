package main

import (
	"context"
	"log"
	"net/http"

	"inkpress/api/router"
	"inkpress/auth"
	"inkpress/config"
	"inkpress/db"
	_ "inkpress/docs" // swag generated package
	"inkpress/eventbus"
	"inkpress/internal/logger"
	"inkpress/repositories"
	"inkpress/services"
	"inkpress/webhooks"
)

// @title           Inkpress API
// @version         1.0
// @description     REST backend for the Inkpress blogging platform
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	verifier, err := webhooks.NewVerifier(cfg.IdentityWebhookSecret)
	if err != nil {
		log.Fatal(err)
	}

	var bus eventbus.Publisher
	if cfg.Events.Enabled {
		kafkaBus, err := eventbus.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			log.Fatal("failed to initialize Kafka publisher:", err)
		}
		defer kafkaBus.Close()
		bus = kafkaBus
	}

	postRepo := repositories.NewPostRepository(db.Database())
	userRepo := repositories.NewUserRepository(db.Database())
	commentRepo := repositories.NewCommentRepository(db.Database())

	postSvc := services.NewPostService(postRepo, userRepo, commentRepo, bus, cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit)
	userSvc := services.NewUserService(userRepo, bus)
	commentSvc := services.NewCommentService(commentRepo, userRepo, postRepo)
	uploadSvc := services.NewUploadService(cfg.MediaPrivateKey, cfg.MediaPublicKey, cfg.MediaURLEndpoint)

	r := router.New(router.Deps{
		JWT:      jwtManager,
		Posts:    postSvc,
		Users:    userSvc,
		Comments: commentSvc,
		Upload:   uploadSvc,
		Webhooks: verifier,
	})

	if err := r.Run(cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
