package api

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rmedina-dev/inkwell-backend/auth"
	"github.com/rmedina-dev/inkwell-backend/database"
	"github.com/rmedina-dev/inkwell-backend/models"
)

// In-memory stores standing in for the gorm repositories. They mirror the
// repo contracts: FindByID misses return (nil, nil), list results come back
// newest first, and the owned mutations are conditional on id+owner.

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *memUserStore) Add(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(user.Email)
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(email)
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type memBlogEntry struct {
	blog *models.Blog
	seq  int
}

type memBlogStore struct {
	mu    sync.Mutex
	blogs map[uuid.UUID]*memBlogEntry
	seq   int
}

func newMemBlogStore() *memBlogStore {
	return &memBlogStore{blogs: make(map[uuid.UUID]*memBlogEntry)}
}

func (s *memBlogStore) sorted(entries []*memBlogEntry) []*models.Blog {
	// created_at DESC, insertion order breaking ties
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].blog.CreatedAt.Equal(entries[j].blog.CreatedAt) {
			return entries[i].seq > entries[j].seq
		}
		return entries[i].blog.CreatedAt.After(entries[j].blog.CreatedAt)
	})
	blogs := make([]*models.Blog, 0, len(entries))
	for _, e := range entries {
		copied := *e.blog
		blogs = append(blogs, &copied)
	}
	return blogs
}

func (s *memBlogStore) FindAll(filter database.BlogFilter) ([]*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []*memBlogEntry
	for _, e := range s.blogs {
		if filter.Category != "" && e.blog.Category != filter.Category {
			continue
		}
		if filter.Author != "" && !strings.Contains(strings.ToLower(e.blog.Author), strings.ToLower(filter.Author)) {
			continue
		}
		entries = append(entries, e)
	}
	return s.sorted(entries), nil
}

func (s *memBlogStore) FindByID(id uuid.UUID) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blogs[id]
	if !ok {
		return nil, nil
	}
	copied := *e.blog
	return &copied, nil
}

func (s *memBlogStore) FindByUserID(userID uuid.UUID) ([]*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []*memBlogEntry
	for _, e := range s.blogs {
		if e.blog.UserID == userID {
			entries = append(entries, e)
		}
	}
	return s.sorted(entries), nil
}

func (s *memBlogStore) Add(blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	s.seq++
	copied := *blog
	s.blogs[blog.ID] = &memBlogEntry{blog: &copied, seq: s.seq}
	return nil
}

func (s *memBlogStore) UpdateOwned(blog *models.Blog, ownerID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blogs[blog.ID]
	if !ok || e.blog.UserID != ownerID {
		return false, nil
	}
	e.blog.Title = blog.Title
	e.blog.Category = blog.Category
	e.blog.Content = blog.Content
	e.blog.Image = blog.Image
	e.blog.UpdatedAt = blog.UpdatedAt
	return true, nil
}

func (s *memBlogStore) DeleteOwned(id, ownerID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blogs[id]
	if !ok || e.blog.UserID != ownerID {
		return false, nil
	}
	delete(s.blogs, id)
	return true, nil
}

type testEnv struct {
	router *chi.Mux
	users  *memUserStore
	blogs  *memBlogStore
	tokens *auth.TokenIssuer
}

func newTestEnv() testEnv {
	users := newMemUserStore()
	blogs := newMemBlogStore()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	handlers := &routeHandlers{
		authHandler:    newAuthHandler(users, tokens),
		blogHandler:    newBlogHandler(blogs, users),
		sitemapHandler: newSitemapHandler(blogs, "http://localhost:3000"),
		uploadHandler:  newUploadHandler(nil),
	}

	router := chi.NewRouter()
	setupRoutes(router, handlers, newAuthMiddleware(tokens), time.Now())

	return testEnv{router: router, users: users, blogs: blogs, tokens: tokens}
}

// addUser registers a user directly in the store and returns it with a
// valid bearer token.
func (e testEnv) addUser(name, email string) (*models.User, string) {
	user := &models.User{Name: name, Email: email, PasswordHash: "x", CreatedAt: time.Now()}
	if err := e.users.Add(user); err != nil {
		panic(err)
	}
	token, err := e.tokens.Issue(user.ID.String())
	if err != nil {
		panic(err)
	}
	return user, token
}
