package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/app/di"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/app/router"
	authadapters "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/adapters"
	authhandler "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/transport/handler"
	authusecase "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/usecase"
	contactadapters "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/adapters"
	contacthandler "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/transport/handler"
	contactusecase "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/usecase"
	userhandler "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/users/transport/handler"
	userusecase "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/users/usecase"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/cache"
	infradb "github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/db"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
	infraredis "github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/redis"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/token"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}
	store := cache.NewStore(rdb)

	// Token signers
	tokenCfg := token.LoadConfig()
	access, err := token.NewSigner(tokenCfg.Secret, "", tokenCfg.Algorithm, token.PurposeAccess, tokenCfg.AccessTTL)
	if err != nil {
		log.Fatalf("access token signer: %v", err)
	}
	verify, err := token.NewSigner(tokenCfg.Secret, token.SaltVerifyEmail, tokenCfg.Algorithm, token.PurposeVerifyEmail, token.DefaultVerifyTTL)
	if err != nil {
		log.Fatalf("verify token signer: %v", err)
	}
	reset, err := token.NewSigner(tokenCfg.Secret, token.SaltReset, tokenCfg.Algorithm, token.PurposeReset, token.DefaultResetTTL)
	if err != nil {
		log.Fatalf("reset token signer: %v", err)
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	contactRepo := contactadapters.NewContactPostgres(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, access, verify, reset, store,
		os.Getenv("FRONTEND_URL"), token.DefaultResetTTL)
	contactUC := contactusecase.NewContactsUsecase(contactRepo)
	userUC := userusecase.NewUsersUsecase(userRepo, di.NewUploader(), store)

	// Identity resolution for protected routes
	resolver := identity.NewResolver(access, authadapters.NewSnapshotSource(userRepo), store)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	contactH := contacthandler.NewContactHandler(contactUC)
	userH := userhandler.NewUserHandler(userUC)

	// Rate limiter for /users/me
	limiter := di.NewLimiter(rdb)

	r := router.NewRouter(resolver, limiter, authH, contactH, userH)

	// SECRET_KEY check
	if os.Getenv("SECRET_KEY") == "" {
		log.Println("[WARN] SECRET_KEY is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
