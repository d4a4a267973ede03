package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harry/pay/internal/assistant"
	"github.com/harry/pay/internal/config"
	"github.com/harry/pay/internal/database"
	"github.com/harry/pay/internal/database/repository"
	"github.com/harry/pay/internal/service"
	"github.com/harry/pay/internal/session"
	"github.com/harry/pay/internal/testdata"
	"github.com/harry/pay/internal/tui"
)

func main() {
	reset := flag.Bool("reset", false, "delete all users and links, then exit")
	seed := flag.Int("seed", 0, "create the demo account with this many sample links, then exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	for _, dir := range []string{filepath.Dir(cfg.Database.Path), filepath.Dir(cfg.Session.Path)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	// repositories
	userRepo := repository.NewUserRepo(db)
	linkRepo := repository.NewPaymentLinkRepo(db)

	// services
	auth := &service.AuthService{DB: db, Users: userRepo, Links: linkRepo, PasswordLength: cfg.Auth.PasswordLength, Cost: cfg.Auth.BcryptCost}
	links := &service.LinkService{Links: linkRepo, BaseURL: cfg.Links.BaseURL, TZ: loc}
	helper := &service.AssistantService{Links: links, Extractor: assistant.NewRegexExtractor()}
	maintenance := &service.MaintenanceService{DB: db}

	if *reset {
		if err := maintenance.Reset(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
		if err := os.RemoveAll(cfg.Session.Path); err != nil {
			log.Fatalf("reset sessions: %v", err)
		}
		fmt.Println("all data removed")
		return
	}
	if *seed > 0 {
		u, err := testdata.Seed(ctx, auth, links, *seed, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		fmt.Printf("seeded %d links for %q (password %s)\n", *seed, u.Name, testdata.DemoPassword)
		return
	}

	sessions, err := session.Open(cfg.Session.Path, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("sessions: %v", err)
	}
	defer sessions.Close()
	if err := sessions.Purge(); err != nil {
		log.Printf("warn: purge sessions: %v", err)
	}

	// the TUI owns the terminal from here on
	if cfg.Log.Path != "" {
		f, err := tea.LogToFile(cfg.Log.Path, "pay")
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Services{Auth: auth, Links: links, Assistant: helper, Sessions: sessions},
		loc,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
