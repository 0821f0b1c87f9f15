//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/db"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/server"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

const serverPort = 18080

var baseURL = fmt.Sprintf("http://localhost:%d", serverPort)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	cfg := e2eConfig()
	if err := waitForPostgres(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := db.Migrate(cfg.Database, db.Up); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := server.New(ctx, cfg, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}
	go func() {
		_ = srv.Start()
	}()

	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown(context.Background())
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown(context.Background())
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

func e2eConfig() config.Config {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("DB_DRIVER", config.DriverPgx)
	_ = os.Setenv("DB_HOST", "localhost")
	_ = os.Setenv("DB_PORT", "5432")
	_ = os.Setenv("DB_USER", "minilinked")
	_ = os.Setenv("DB_PASSWORD", "password")
	_ = os.Setenv("DB_NAME", "minilinked")
	_ = os.Setenv("DB_USE_SSL", "false")
	_ = os.Setenv("MEDIA_BACKEND", config.MediaMinio)
	_ = os.Setenv("MINIO_ACCESS_KEY", "minioadmin")
	_ = os.Setenv("MINIO_SECRET_KEY", "minioadmin")
	_ = os.Setenv("MINIO_BUCKET", "minilinked-e2e")
	_ = os.Setenv("EVENTS_BACKEND", config.EventsRabbitMQ)
	return config.LoadConfig()
}

func TestSocialLifecycle(t *testing.T) {
	suffix := time.Now().UnixNano()
	since := time.Now().Add(-time.Minute).UTC()
	alice := signUp(t, fmt.Sprintf("Alice %d", suffix), fmt.Sprintf("alice_%d@example.com", suffix))
	bob := signUp(t, fmt.Sprintf("Bob %d", suffix), fmt.Sprintf("bob_%d@example.com", suffix))

	var created struct {
		Post types.Post `json:"post"`
	}
	call(t, http.MethodPost, "/posts", alice.Token, map[string]string{"content": "Hello from Postgres"}, http.StatusCreated, &created)
	if created.Post.ID == 0 {
		t.Fatalf("expected post ID to be set")
	}

	likePath := fmt.Sprintf("/posts/%d/like", created.Post.ID)
	call(t, http.MethodPost, likePath, bob.Token, nil, http.StatusOK, nil)
	call(t, http.MethodPost, likePath, bob.Token, nil, http.StatusBadRequest, nil)

	var second struct {
		Post types.Post `json:"post"`
	}
	call(t, http.MethodPost, "/posts", bob.Token, map[string]string{"content": "Bob checks in"}, http.StatusCreated, &second)

	var count struct {
		Count int `json:"count"`
	}
	call(t, http.MethodGet, "/posts/new?after="+url.QueryEscape(created.Post.CreatedAt.Format(time.RFC3339Nano)), "", nil, http.StatusOK, &count)
	if count.Count < 1 {
		t.Fatalf("expected the later post to be counted, got %d", count.Count)
	}
	var newer []types.FeedPost
	call(t, http.MethodGet, "/posts/new-posts?after="+url.QueryEscape(since.Format(time.RFC3339Nano)), "", nil, http.StatusOK, &newer)
	if !containsPost(newer, created.Post.ID) || !containsPost(newer, second.Post.ID) {
		t.Fatalf("new posts missing %d or %d: %+v", created.Post.ID, second.Post.ID, newer)
	}
	call(t, http.MethodGet, "/posts/new-posts?after="+url.QueryEscape(second.Post.CreatedAt.Format(time.RFC3339Nano)), "", nil, http.StatusOK, &newer)
	if containsPost(newer, second.Post.ID) {
		t.Fatalf("after filter must be strict: %+v", newer)
	}

	unlikePath := fmt.Sprintf("/posts/%d/unlike", second.Post.ID)
	call(t, http.MethodPost, unlikePath, alice.Token, nil, http.StatusBadRequest, nil)
	call(t, http.MethodPost, fmt.Sprintf("/posts/%d/like", second.Post.ID), alice.Token, nil, http.StatusOK, nil)
	call(t, http.MethodPost, unlikePath, alice.Token, nil, http.StatusOK, nil)
	call(t, http.MethodPost, unlikePath, alice.Token, nil, http.StatusBadRequest, nil)

	call(t, http.MethodPost, fmt.Sprintf("/comments/post/%d", created.Post.ID), bob.Token,
		map[string]string{"content": "Congrats"}, http.StatusCreated, nil)

	var feed []types.FeedPost
	call(t, http.MethodGet, fmt.Sprintf("/posts/user/%d", alice.User.ID), "", nil, http.StatusOK, &feed)
	if len(feed) != 1 || feed[0].LikeCount != 1 {
		t.Fatalf("unexpected user feed: %+v", feed)
	}

	var notes types.Notifications
	call(t, http.MethodGet, "/notifications", alice.Token, nil, http.StatusOK, &notes)
	if len(notes.Likes) != 1 || len(notes.Comments) != 1 {
		t.Fatalf("unexpected notifications: %+v", notes)
	}

	call(t, http.MethodPost, "/friend-requests/send", alice.Token,
		map[string]any{"receiverId": bob.User.ID}, http.StatusCreated, nil)
	var received []types.FriendRequest
	call(t, http.MethodGet, "/friend-requests/received", bob.Token, nil, http.StatusOK, &received)
	if len(received) != 1 {
		t.Fatalf("unexpected pending requests: %+v", received)
	}
	call(t, http.MethodPost, "/friend-requests/respond", bob.Token,
		map[string]any{"requestId": received[0].ID, "action": "reject"}, http.StatusOK, nil)

	call(t, http.MethodPost, "/admin/register", "", map[string]string{
		"name": fmt.Sprintf("Root %d", suffix), "email": fmt.Sprintf("root_%d@example.com", suffix), "password": "testpass123!",
	}, http.StatusCreated, nil)
	var admin session
	call(t, http.MethodPost, "/admin/login", "", map[string]string{
		"email": fmt.Sprintf("root_%d@example.com", suffix), "password": "testpass123!",
	}, http.StatusOK, &admin)
	call(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", bob.User.ID), bob.Token, nil, http.StatusForbidden, nil)
	call(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", bob.User.ID), admin.Token, nil, http.StatusOK, nil)
	call(t, http.MethodGet, fmt.Sprintf("/users/%d", bob.User.ID), "", nil, http.StatusNotFound, nil)
	call(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", bob.User.ID), admin.Token, nil, http.StatusNotFound, nil)
	call(t, http.MethodGet, fmt.Sprintf("/posts/user/%d", bob.User.ID), "", nil, http.StatusOK, &feed)
	if !containsPost(feed, second.Post.ID) {
		t.Fatalf("admin delete must keep the user's posts: %+v", feed)
	}

	call(t, http.MethodDelete, fmt.Sprintf("/users/%d", alice.User.ID), alice.Token, nil, http.StatusOK, nil)
	call(t, http.MethodGet, fmt.Sprintf("/posts/user/%d", alice.User.ID), "", nil, http.StatusOK, &feed)
	if len(feed) != 0 {
		t.Fatalf("expected posts to be deleted with the account: %+v", feed)
	}
}

func containsPost(posts []types.FeedPost, id int) bool {
	for _, post := range posts {
		if post.ID == id {
			return true
		}
	}
	return false
}

type session struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

func signUp(t *testing.T, name, email string) session {
	t.Helper()
	call(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "testpass123!",
	}, http.StatusCreated, nil)

	var s session
	call(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": "testpass123!",
	}, http.StatusOK, &s)
	if s.Token == "" {
		t.Fatalf("missing token for %s", email)
	}
	return s
}

func call(t *testing.T, method, path, token string, payload any, wantStatus int, out any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s status %d, want %d: %s", method, path, resp.StatusCode, wantStatus, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
}

func waitForPostgres(ctx context.Context, cfg config.Config) error {
	conn, err := sql.Open("postgres", db.PostgresURL(cfg.Database))
	if err != nil {
		return err
	}
	defer conn.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := conn.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
