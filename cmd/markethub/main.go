package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"markethub/internal/account"
	"markethub/internal/cart"
	"markethub/internal/catalog"
	"markethub/internal/chat"
	"markethub/internal/config"
	"markethub/internal/db"
	"markethub/internal/logger"
	"markethub/internal/seller"
	"markethub/internal/session"
	"markethub/internal/store"

	"github.com/google/uuid"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	if err := store.EnsureSchema(database); err != nil {
		log.Fatalf("failed to prepare record store: %v", err)
	}

	stdin := bufio.NewScanner(os.Stdin)

	recordStore := store.New(database)

	accountSvc := account.NewService(account.NewRepository(recordStore))
	sessions := session.NewManager(
		session.NewRepository(recordStore),
		newPromptConfirmer(stdin, os.Stdout),
	)
	catalogSvc := catalog.NewService()
	cartSvc := cart.NewService(sessions)
	sellerSvc := seller.NewService()
	chatSvc := chat.NewService(cfg.ChatReplyDelay)

	// Logout empties the cart and calls off any scheduled chat reply.
	sessions.OnLogout(cartSvc.Clear)
	sessions.OnLogout(chatSvc.CancelPending)

	// One process is one browser tab; tag all its logs with one id.
	ctx := logger.WithSessionID(context.Background(), uuid.NewString())

	if err := sessions.Restore(ctx); err != nil {
		log.Printf("could not restore session: %v", err)
	}

	app := &app{
		in:       stdin,
		out:      os.Stdout,
		accounts: accountSvc,
		sessions: sessions,
		catalog:  catalogSvc,
		cart:     cartSvc,
		seller:   sellerSvc,
		chat:     chatSvc,
	}
	app.run(ctx)
}
