package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"learning-platform-api/internal/config"
	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/model"
	"learning-platform-api/internal/domain/ports/repository"
	pg "learning-platform-api/internal/infra/db/postgres"
	"learning-platform-api/internal/infra/security"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	users := pg.NewUserRepo(pool)
	courses := pg.NewCourseRepo(pool)
	hasher := security.NewPasswordHasher()

	// If the admin already exists, do nothing.
	if _, err := users.FindByEmail(ctx, nil, "admin@example.com"); err == nil {
		fmt.Println("admin already present. No changes.")
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Fatalf("lookup admin: %v", err)
	}

	admin := seedUser(ctx, users, hasher, "admin@example.com", "admin-password")
	admin.IsStaff = true
	if err := users.Save(ctx, nil, admin); err != nil {
		log.Fatalf("save admin: %v", err)
	}
	fmt.Printf("seeded: admin (id=%s)\n", admin.ID)

	moderator := seedUser(ctx, users, hasher, "moderator@example.com", "moderator-password")
	if err := users.AddToGroup(ctx, nil, moderator.ID, model.GroupModerators); err != nil {
		log.Fatalf("add moderator group: %v", err)
	}
	fmt.Printf("seeded: moderator (id=%s)\n", moderator.ID)

	owner := seedUser(ctx, users, hasher, "teacher@example.com", "teacher-password")
	fmt.Printf("seeded: teacher (id=%s)\n", owner.ID)

	// A couple of sample courses for testing the payment flow.
	seed := []struct {
		Name  string
		Price int64
	}{
		{"Go for Backend Engineers", 500},
		{"SQL Fundamentals", 300},
	}
	for _, s := range seed {
		c, err := model.NewCourse(s.Name, owner.ID)
		if err != nil {
			log.Fatalf("new course %q: %v", s.Name, err)
		}
		price := s.Price
		c.Price = &price
		if err := courses.Save(ctx, nil, c); err != nil {
			log.Fatalf("save course %q: %v", s.Name, err)
		}
		fmt.Printf("seeded: %s (id=%s, price=%d)\n", c.Name, c.ID, s.Price)
	}

	fmt.Println("seeding complete.")
}

func seedUser(ctx context.Context, users repository.UserRepository, hasher *security.PasswordHasher, email, password string) *model.User {
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	u, err := model.NewUser("", email, hash)
	if err != nil {
		log.Fatalf("new user %q: %v", email, err)
	}
	if err := users.Save(ctx, nil, u); err != nil {
		log.Fatalf("save user %q: %v", email, err)
	}
	return u
}
