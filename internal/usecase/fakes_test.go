package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/GoArmGo/NewsApp/internal/core/ports"
	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/GoArmGo/NewsApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

// fakeNewsStorage — потокобезопасная in-memory реализация ports.NewsStorage.
type fakeNewsStorage struct {
	mu        sync.Mutex
	items     map[uuid.UUID]domain.News
	clock     int64
	updateErr error
}

func newFakeNewsStorage() *fakeNewsStorage {
	return &fakeNewsStorage{items: make(map[uuid.UUID]domain.News)}
}

func (s *fakeNewsStorage) SaveNews(ctx context.Context, news *domain.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if news.ID == uuid.Nil {
		news.ID = uuid.New()
	}
	// монотонный фальшивый таймстемп, чтобы порядок вставки был различим
	s.clock++
	news.CreatedAt = time.Unix(s.clock, 0)
	news.UpdatedAt = news.CreatedAt
	s.items[news.ID] = *news
	return nil
}

func (s *fakeNewsStorage) GetNewsByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	news, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &news, nil
}

func (s *fakeNewsStorage) ListNews(ctx context.Context, page, perPage int) ([]domain.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]domain.News, 0, len(s.items))
	for _, n := range s.items {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (s *fakeNewsStorage) UpdateNews(ctx context.Context, news *domain.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	news.UpdatedAt = time.Unix(s.clock+1, 0)
	s.items[news.ID] = *news
	return nil
}

func (s *fakeNewsStorage) DeleteNews(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *fakeNewsStorage) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// fakeUserStorage — in-memory реализация ports.UserStorage.
type fakeUserStorage struct {
	mu        sync.Mutex
	users     []domain.User
	createErr error
}

func (s *fakeUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("%w: users_username_key", ports.ErrDuplicate)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users = append(s.users, *user)
	return nil
}

func (s *fakeUserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

// fakeFileStorage — реализация ports.FileStorage, возвращающая
// предсказуемые direct-download ссылки.
type fakeFileStorage struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	failNext bool
}

func (s *fakeFileStorage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		return "", errors.New("provider unavailable")
	}
	s.uploaded = append(s.uploaded, key)
	return "https://dl.dropboxusercontent.com/s/test" + key + "?raw=1", nil
}

func (s *fakeFileStorage) DeleteFile(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

// fakeCleanupPublisher — реализация ports.ImageCleanupPublisher, собирающая задачи.
type fakeCleanupPublisher struct {
	mu        sync.Mutex
	published []payloads.ImageCleanupPayload
}

func (p *fakeCleanupPublisher) PublishImageCleanup(ctx context.Context, payload payloads.ImageCleanupPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, payload)
	return nil
}
