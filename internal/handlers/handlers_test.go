package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gotodo/apiserver/internal/services"
	"github.com/gotodo/apiserver/internal/store"
	"github.com/gotodo/apiserver/internal/token"
	"github.com/gotodo/apiserver/types"
)

const testTokenTTL = time.Hour

// testEnv wires the real router, middleware, and services over
// in-memory repositories.
type testEnv struct {
	router   *chi.Mux
	tokens   *token.Service
	userRepo *fakeUserRepo
	todoRepo *fakeTodoRepo
}

func newTestEnv() *testEnv {
	userRepo := newFakeUserRepo()
	todoRepo := newFakeTodoRepo()

	userService := services.NewUserService(userRepo)
	todoService := services.NewTodoService(todoRepo)
	tokens := token.NewService("test-secret")

	authMiddleware := RequireAuth(tokens, userService)

	router := chi.NewRouter()
	router.Get("/healthz", Healthz)
	AuthRouter(router, userService, tokens, testTokenTTL)
	router.Route("/todos", func(r chi.Router) {
		TodoRouter(r, todoService, authMiddleware)
	})

	return &testEnv{
		router:   router,
		tokens:   tokens,
		userRepo: userRepo,
		todoRepo: todoRepo,
	}
}

func (e *testEnv) do(t *testing.T, method, path, tokenString string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tokenString != "" {
		req.Header.Set("Authorization", tokenString)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("register returned empty token")
	}
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, value any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(value); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

// fakeUserRepo is an in-memory services.UserRepository with the same
// error contract as the SQL implementation.
type fakeUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]types.User{}}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

// fakeTodoRepo is an in-memory services.TodoRepository mirroring the
// SQL repository's ownership and ordering semantics.
type fakeTodoRepo struct {
	nextID int
	todos  map[int]types.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{nextID: 1, todos: map[int]types.Todo{}}
}

func (r *fakeTodoRepo) Create(ctx context.Context, todo types.Todo) (types.Todo, error) {
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	todo.ID = r.nextID
	r.nextID++
	r.todos[todo.ID] = todo
	return todo, nil
}

func (r *fakeTodoRepo) Update(ctx context.Context, todo types.Todo) (types.Todo, error) {
	existing, ok := r.todos[todo.ID]
	if !ok || existing.UserID != todo.UserID {
		return types.Todo{}, store.ErrNotFound
	}
	existing.Title = todo.Title
	existing.Description = todo.Description
	existing.UpdatedAt = time.Now()
	r.todos[todo.ID] = existing
	return existing, nil
}

func (r *fakeTodoRepo) Delete(ctx context.Context, id, ownerID int) error {
	existing, ok := r.todos[id]
	if !ok || existing.UserID != ownerID {
		return store.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *fakeTodoRepo) ListByOwner(ctx context.Context, ownerID, offset, limit int) ([]types.Todo, int, error) {
	ids := make([]int, 0, len(r.todos))
	for id, todo := range r.todos {
		if todo.UserID == ownerID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	total := len(ids)
	if offset >= total {
		return []types.Todo{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	todos := make([]types.Todo, 0, end-offset)
	for _, id := range ids[offset:end] {
		todos = append(todos, r.todos[id])
	}
	return todos, total, nil
}
