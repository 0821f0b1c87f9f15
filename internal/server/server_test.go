package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		ServerPort:        0,
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		AdminTokenTTL:     time.Hour,
		AdminAuthTokenTTL: time.Hour,
		Log:               config.LogConfig{Level: "error", Format: "text"},
		CORS:              config.CORSConfig{AllowedOrigins: []string{"*"}},
		Database:          config.DatabaseConfig{Driver: config.DriverMemory},
		Media: config.MediaConfig{
			Backend:  config.MediaLocal,
			Dir:      t.TempDir(),
			MaxBytes: 5 << 20,
		},
		Events: config.EventsConfig{Backend: config.EventsNone, Channel: "minilinked.test"},
	}
}

type apiClient struct {
	t       *testing.T
	base    string
	handler http.Handler
}

func newTestServer(t *testing.T) apiClient {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(context.Background(), testConfig(t), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return apiClient{t: t, base: ts.URL, handler: srv.Router()}
}

func (c apiClient) send(req *http.Request, token string) (int, []byte) {
	c.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

func (c apiClient) do(method, path, token string, payload any) (int, []byte) {
	c.t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token)
}

func (c apiClient) expect(method, path, token string, payload any, wantStatus int, out any) {
	c.t.Helper()
	status, body := c.do(method, path, token, payload)
	if status != wantStatus {
		c.t.Fatalf("%s %s = %d, want %d: %s", method, path, status, wantStatus, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			c.t.Fatalf("decode %s %s: %v (%s)", method, path, err, body)
		}
	}
}

func (c apiClient) expectMessage(method, path, token string, payload any, wantStatus int, wantMessage string) {
	c.t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	c.expect(method, path, token, payload, wantStatus, &resp)
	if resp.Message != wantMessage {
		c.t.Fatalf("%s %s message = %q, want %q", method, path, resp.Message, wantMessage)
	}
}

type session struct {
	token string
	user  types.User
}

func (c apiClient) signUp(name, email string) session {
	c.t.Helper()
	c.expect(http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	}, http.StatusCreated, nil)
	return c.login("/auth/login", email)
}

func (c apiClient) login(path, email string) session {
	c.t.Helper()
	var resp struct {
		Token string     `json:"token"`
		User  types.User `json:"user"`
	}
	c.expect(http.MethodPost, path, "", map[string]string{
		"email": email, "password": "secret123",
	}, http.StatusOK, &resp)
	if resp.Token == "" {
		c.t.Fatalf("login %s returned no token", email)
	}
	return session{token: resp.Token, user: resp.User}
}

func (c apiClient) createPost(token, content string) types.Post {
	c.t.Helper()
	var resp struct {
		Message string     `json:"message"`
		Post    types.Post `json:"post"`
	}
	c.expect(http.MethodPost, "/posts", token, map[string]string{"content": content}, http.StatusCreated, &resp)
	if resp.Message != "Post created" {
		c.t.Fatalf("create post message = %q", resp.Message)
	}
	return resp.Post
}

func TestWelcomeAndHealth(t *testing.T) {
	c := newTestServer(t)

	status, body := c.do(http.MethodGet, "/", "", nil)
	if status != http.StatusOK || !bytes.Contains(body, []byte("Welcome to Mini LinkedIn API")) {
		t.Fatalf("GET / = %d %s", status, body)
	}

	var health struct {
		Status string `json:"status"`
	}
	c.expect(http.MethodGet, "/healthz", "", nil, http.StatusOK, &health)
	if health.Status != "ok" {
		t.Fatalf("health status = %q", health.Status)
	}

	c.expect(http.MethodGet, "/nope", "", nil, http.StatusNotFound, nil)
}

func TestAuthentication(t *testing.T) {
	c := newTestServer(t)

	alice := c.signUp("Alice", "alice@example.com")

	c.expectMessage(http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Other", "email": "alice@example.com", "password": "secret123",
	}, http.StatusConflict, "Email is already registered")

	c.expectMessage(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	}, http.StatusUnauthorized, "Invalid email or password")
	c.expectMessage(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "secret123",
	}, http.StatusUnauthorized, "Invalid email or password")

	var me types.User
	c.expect(http.MethodGet, "/auth/me", alice.token, nil, http.StatusOK, &me)
	if me.ID != alice.user.ID || me.Role != types.RoleUser {
		t.Fatalf("me = %+v", me)
	}

	c.expect(http.MethodGet, "/auth/me", "", nil, http.StatusUnauthorized, nil)
	c.expectMessage(http.MethodPost, "/posts", "", map[string]string{"content": "hi"},
		http.StatusUnauthorized, "Authentication token required")
	c.expectMessage(http.MethodPost, "/posts", "garbage", map[string]string{"content": "hi"},
		http.StatusUnauthorized, "Invalid token")
}

func TestPostsLikesCommentsAndNotifications(t *testing.T) {
	c := newTestServer(t)

	alice := c.signUp("Alice", "alice@example.com")
	bob := c.signUp("Bob", "bob@example.com")

	post := c.createPost(alice.token, "  Hello network  ")
	if post.Content != "Hello network" || post.UserID != alice.user.ID {
		t.Fatalf("post = %+v", post)
	}
	c.expectMessage(http.MethodPost, "/posts", alice.token, map[string]string{"content": "   "},
		http.StatusBadRequest, "Post content or media is required")

	likePath := fmt.Sprintf("/posts/%d/like", post.ID)
	c.expectMessage(http.MethodPost, likePath, bob.token, nil, http.StatusOK, "Post liked")
	c.expectMessage(http.MethodPost, likePath, bob.token, nil, http.StatusBadRequest, "Post already liked")
	c.expect(http.MethodPost, "/posts/9999/like", bob.token, nil, http.StatusNotFound, nil)

	var feed []types.FeedPost
	c.expect(http.MethodGet, "/posts", "", nil, http.StatusOK, &feed)
	if len(feed) != 1 || feed[0].AuthorName != "Alice" || feed[0].LikeCount != 1 {
		t.Fatalf("feed = %+v", feed)
	}

	commentPath := fmt.Sprintf("/comments/post/%d", post.ID)
	c.expectMessage(http.MethodPost, commentPath, bob.token, map[string]string{"content": "Nice!"},
		http.StatusCreated, "Comment added")
	c.expect(http.MethodPost, "/comments/post/9999", bob.token, map[string]string{"content": "Nice!"},
		http.StatusNotFound, nil)

	var comments []types.Comment
	c.expect(http.MethodGet, commentPath, "", nil, http.StatusOK, &comments)
	if len(comments) != 1 || comments[0].UserName != "Bob" {
		t.Fatalf("comments = %+v", comments)
	}

	var notes types.Notifications
	c.expect(http.MethodGet, "/notifications", alice.token, nil, http.StatusOK, &notes)
	if len(notes.Likes) != 1 || notes.Likes[0].LikerName != "Bob" {
		t.Fatalf("like notifications = %+v", notes.Likes)
	}
	if len(notes.Comments) != 1 || notes.Comments[0].CommentText != "Nice!" {
		t.Fatalf("comment notifications = %+v", notes.Comments)
	}

	c.expectMessage(http.MethodPost, fmt.Sprintf("/posts/%d/unlike", post.ID), bob.token, nil,
		http.StatusOK, "Post unliked")

	postPath := fmt.Sprintf("/posts/%d", post.ID)
	c.expect(http.MethodPut, postPath, bob.token, map[string]string{"content": "hijack"}, http.StatusForbidden, nil)
	c.expectMessage(http.MethodPut, postPath, alice.token, map[string]string{"content": "Edited"},
		http.StatusOK, "Post updated successfully")
	c.expect(http.MethodDelete, postPath, bob.token, nil, http.StatusForbidden, nil)
	c.expectMessage(http.MethodDelete, postPath, alice.token, nil, http.StatusOK, "Post deleted successfully")

	c.expect(http.MethodGet, "/posts", "", nil, http.StatusOK, &feed)
	if len(feed) != 0 {
		t.Fatalf("feed after delete = %+v", feed)
	}
}

func TestNewPostsSince(t *testing.T) {
	c := newTestServer(t)
	alice := c.signUp("Alice", "alice@example.com")

	before := time.Now().Add(-time.Minute).UnixMilli()
	first := c.createPost(alice.token, "first")
	c.createPost(alice.token, "second")

	var count struct {
		Count int `json:"count"`
	}
	c.expect(http.MethodGet, "/posts/new?after="+strconv.FormatInt(before, 10), "", nil, http.StatusOK, &count)
	if count.Count != 2 {
		t.Fatalf("count since before = %d, want 2", count.Count)
	}

	after := first.CreatedAt.Format(time.RFC3339Nano)
	var newer []types.FeedPost
	c.expect(http.MethodGet, "/posts/new-posts?after="+url.QueryEscape(after), "", nil, http.StatusOK, &newer)
	if len(newer) != 1 || newer[0].Content != "second" {
		t.Fatalf("new posts = %+v", newer)
	}

	c.expect(http.MethodGet, "/posts/new", "", nil, http.StatusBadRequest, nil)
}

func pngFile(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func (c apiClient) uploadPost(token, content, filename, contentType string, data []byte) (int, []byte) {
	c.t.Helper()
	return c.send(c.uploadRequest(content, filename, contentType, data), token)
}

func (c apiClient) uploadRequest(content, filename, contentType string, data []byte) *http.Request {
	c.t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("content", content)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		c.t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		c.t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		c.t.Fatalf("close writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.base+"/posts", &body)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestMediaUpload(t *testing.T) {
	c := newTestServer(t)
	alice := c.signUp("Alice", "alice@example.com")
	picture := pngFile(t)

	status, body := c.uploadPost(alice.token, "with a picture", "pic.png", "image/png", picture)
	if status != http.StatusCreated {
		t.Fatalf("upload = %d %s", status, body)
	}
	var created struct {
		Post types.Post `json:"post"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Post.MediaPath == "" {
		t.Fatalf("expected media path, got %+v", created.Post)
	}

	req, _ := http.NewRequest(http.MethodGet, c.base+"/uploads/"+created.Post.MediaPath, nil)
	status, served := c.send(req, "")
	if status != http.StatusOK || !bytes.Equal(served, picture) {
		t.Fatalf("fetch media = %d (%d bytes)", status, len(served))
	}
	c.expect(http.MethodGet, "/uploads/missing.png", "", nil, http.StatusNotFound, nil)

	status, body = c.uploadPost(alice.token, "", "notes.txt", "text/plain", []byte("plain text"))
	if status != http.StatusBadRequest || !bytes.Contains(body, []byte("Only image and video files are allowed.")) {
		t.Fatalf("text upload = %d %s", status, body)
	}

	c.expectMessage(http.MethodDelete, fmt.Sprintf("/posts/%d", created.Post.ID), alice.token, nil,
		http.StatusOK, "Post deleted successfully")
	c.expect(http.MethodGet, "/uploads/"+created.Post.MediaPath, "", nil, http.StatusNotFound, nil)
}

func TestMediaServedAsValidatedType(t *testing.T) {
	c := newTestServer(t)
	alice := c.signUp("Alice", "alice@example.com")

	status, body := c.uploadPost(alice.token, "", "evil.html", "image/png", []byte("<script>alert(1)</script>"))
	if status != http.StatusCreated {
		t.Fatalf("upload = %d %s", status, body)
	}
	var created struct {
		Post types.Post `json:"post"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(created.Post.MediaPath, ".png") {
		t.Fatalf("media path = %q, want .png suffix", created.Post.MediaPath)
	}

	resp, err := http.Get(c.base + "/uploads/" + created.Post.MediaPath)
	if err != nil {
		t.Fatalf("fetch media: %v", err)
	}
	defer resp.Body.Close()
	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode != http.StatusOK || strings.Contains(contentType, "html") {
		t.Fatalf("fetch media = %d %q", resp.StatusCode, contentType)
	}
	if contentType != "image/png" || resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("headers = %q nosniff=%q", contentType, resp.Header.Get("X-Content-Type-Options"))
	}
}

func TestOversizedUploadsShareMessage(t *testing.T) {
	c := newTestServer(t)
	alice := c.signUp("Alice", "alice@example.com")

	for _, size := range []int{5<<20 + 1, 7 << 20} {
		data := make([]byte, size)
		copy(data, pngFile(t))
		req := c.uploadRequest("", "big.png", "image/png", data)
		req.Header.Set("Authorization", "Bearer "+alice.token)
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, req)

		var resp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if rec.Code != http.StatusBadRequest || resp.Message != "Media file exceeds the 5MB limit" {
			t.Fatalf("upload of %d bytes = %d %s", size, rec.Code, rec.Body.String())
		}
	}
}

func TestMessagesAndFriendRequests(t *testing.T) {
	c := newTestServer(t)
	alice := c.signUp("Alice", "alice@example.com")
	bob := c.signUp("Bob", "bob@example.com")

	c.expectMessage(http.MethodPost, "/messages", alice.token, map[string]any{
		"receiverId": bob.user.ID, "content": "Hi Bob",
	}, http.StatusCreated, "Message sent successfully")
	c.expect(http.MethodPost, "/messages", alice.token, map[string]any{
		"receiverId": 9999, "content": "Hello?",
	}, http.StatusNotFound, nil)
	c.expect(http.MethodPost, "/messages", alice.token, map[string]any{
		"receiverId": bob.user.ID, "content": "  ",
	}, http.StatusBadRequest, nil)

	var conversation []types.Message
	c.expect(http.MethodGet, fmt.Sprintf("/messages/%d", alice.user.ID), bob.token, nil, http.StatusOK, &conversation)
	if len(conversation) != 1 || conversation[0].Content != "Hi Bob" {
		t.Fatalf("conversation = %+v", conversation)
	}

	send := map[string]any{"receiverId": bob.user.ID}
	c.expectMessage(http.MethodPost, "/friend-requests/send", alice.token, send, http.StatusCreated, "Friend request sent")
	c.expectMessage(http.MethodPost, "/friend-requests/send", alice.token, send,
		http.StatusBadRequest, "Friend request already sent")
	c.expect(http.MethodPost, "/friend-requests/send", alice.token,
		map[string]any{"receiverId": alice.user.ID}, http.StatusBadRequest, nil)

	var received []types.FriendRequest
	c.expect(http.MethodGet, "/friend-requests/received", bob.token, nil, http.StatusOK, &received)
	if len(received) != 1 || received[0].SenderName != "Alice" {
		t.Fatalf("received = %+v", received)
	}

	respond := map[string]any{"requestId": received[0].ID, "action": "accept"}
	c.expect(http.MethodPost, "/friend-requests/respond", alice.token, respond, http.StatusNotFound, nil)
	c.expect(http.MethodPost, "/friend-requests/respond", bob.token,
		map[string]any{"requestId": received[0].ID, "action": "maybe"}, http.StatusBadRequest, nil)
	c.expectMessage(http.MethodPost, "/friend-requests/respond", bob.token, respond,
		http.StatusOK, "Friend request accepted")
	c.expect(http.MethodPost, "/friend-requests/respond", bob.token, respond, http.StatusNotFound, nil)

	c.expect(http.MethodGet, "/friend-requests/received", bob.token, nil, http.StatusOK, &received)
	if len(received) != 0 {
		t.Fatalf("pending after accept = %+v", received)
	}
}

func TestProfileManagement(t *testing.T) {
	c := newTestServer(t)
	alice := c.signUp("Alice", "alice@example.com")
	bob := c.signUp("Bob", "bob@example.com")
	c.createPost(alice.token, "soon gone")

	profilePath := fmt.Sprintf("/users/%d", alice.user.ID)
	c.expect(http.MethodPut, profilePath, bob.token, map[string]string{"bio": "x"}, http.StatusForbidden, nil)
	c.expectMessage(http.MethodPut, profilePath, alice.token, map[string]string{"name": "Alicia"},
		http.StatusBadRequest, "Current password is required to update sensitive info")
	c.expectMessage(http.MethodPut, profilePath, alice.token, map[string]string{"name": "Bob", "currentPassword": "secret123"},
		http.StatusBadRequest, "Email or name already in use by another user")
	c.expectMessage(http.MethodPut, profilePath, alice.token, map[string]string{"bio": "Gopher"},
		http.StatusOK, "Profile updated successfully")

	var user types.User
	c.expect(http.MethodGet, profilePath, "", nil, http.StatusOK, &user)
	if user.Bio != "Gopher" || user.Name != "Alice" {
		t.Fatalf("profile = %+v", user)
	}

	c.expect(http.MethodDelete, profilePath, bob.token, nil, http.StatusForbidden, nil)
	c.expectMessage(http.MethodDelete, profilePath, alice.token, nil,
		http.StatusOK, "User and all posts deleted successfully")
	c.expect(http.MethodGet, profilePath, "", nil, http.StatusNotFound, nil)

	var posts []types.FeedPost
	c.expect(http.MethodGet, fmt.Sprintf("/posts/user/%d", alice.user.ID), "", nil, http.StatusOK, &posts)
	if len(posts) != 0 {
		t.Fatalf("posts after account delete = %+v", posts)
	}
}

func TestAdminFlows(t *testing.T) {
	c := newTestServer(t)
	member := c.signUp("Mallory", "mallory@example.com")
	c.createPost(member.token, "still here")

	c.expectMessage(http.MethodPost, "/admin/register", "", map[string]string{
		"name": "Root", "email": "root@example.com", "password": "secret123",
	}, http.StatusCreated, "Admin registered successfully")

	c.expectMessage(http.MethodPost, "/admin/login", "", map[string]string{
		"email": "mallory@example.com", "password": "secret123",
	}, http.StatusForbidden, "Access denied: Admins only")
	c.expectMessage(http.MethodPost, "/adminAuth/login", "", map[string]string{
		"email": "root@example.com", "password": "nope",
	}, http.StatusUnauthorized, "Invalid credentials")

	admin := c.login("/admin/login", "root@example.com")
	if admin.user.Role != types.RoleAdmin {
		t.Fatalf("admin role = %q", admin.user.Role)
	}
	c.login("/adminAuth/login", "root@example.com")

	deletePath := fmt.Sprintf("/admin/users/%d", member.user.ID)
	c.expectMessage(http.MethodDelete, deletePath, "", nil, http.StatusUnauthorized, "Authentication token required")
	c.expectMessage(http.MethodDelete, deletePath, member.token, nil, http.StatusForbidden, "Admin access required")
	c.expectMessage(http.MethodDelete, deletePath, admin.token, nil, http.StatusOK, "User deleted by admin")
	c.expect(http.MethodDelete, deletePath, admin.token, nil, http.StatusNotFound, nil)

	var posts []types.FeedPost
	c.expect(http.MethodGet, fmt.Sprintf("/posts/user/%d", member.user.ID), "", nil, http.StatusOK, &posts)
	if len(posts) != 1 {
		t.Fatalf("posts kept after admin delete = %+v", posts)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = ""
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for missing JWT secret")
	}
}
