// Command seed resets the database and loads development fixtures: an admin,
// a regular user, and a handful of tasks.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/nandha2804/TMS/db"
	"github.com/nandha2804/TMS/internal/task/domain"
	"github.com/nandha2804/TMS/pkg/constant"
)

func main() {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `TRUNCATE tasks, users`); err != nil {
		log.Fatalf("truncate: %v", err)
	}

	adminID := insertUser(ctx, pool, "Admin User", "admin@example.com", "Admin123", constant.RoleAdmin)
	userID := insertUser(ctx, pool, "Regular User", "user@example.com", "User1234", constant.RoleUser)

	now := time.Now()
	tasks := []struct {
		title, description, status, priority string
		creator, assignee                    string
		due                                  time.Time
	}{
		{"Set up project infrastructure", "Set up development environment and initial project structure",
			domain.StatusCompleted, domain.PriorityHigh, adminID, adminID, now.AddDate(0, 0, -7)},
		{"Design database schema", "Model users and tasks with their indexes",
			domain.StatusInProgress, domain.PriorityHigh, adminID, userID, now.AddDate(0, 0, 2)},
		{"Write API documentation", "Document the auth and task endpoints",
			domain.StatusTodo, domain.PriorityMedium, adminID, userID, now.AddDate(0, 0, 5)},
		{"Review pull requests", "Weekly review of open pull requests",
			domain.StatusTodo, domain.PriorityLow, userID, adminID, now.AddDate(0, 0, -1)},
	}

	for _, t := range tasks {
		_, err := pool.Exec(ctx, `
			INSERT INTO tasks (id, title, description, due_date, priority, status,
				creator_id, assignee_id, is_recurring, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, now(), now())
		`, uuid.NewString(), t.title, t.description, t.due, t.priority, t.status, t.creator, t.assignee)
		if err != nil {
			log.Fatalf("insert task %q: %v", t.title, err)
		}
	}

	log.Printf("seeded %d users and %d tasks", 2, len(tasks))
}

func insertUser(ctx context.Context, pool *pgxpool.Pool, name, email, password, role string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("hash password for %s: %v", email, err)
	}

	id := uuid.NewString()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, id, email, string(hash), name, role)
	if err != nil {
		log.Fatalf("insert user %s: %v", email, err)
	}

	return id
}
