// internal/services/user_directory.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/javajoker/marketflow-backend/internal/models"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUser        = errors.New("name and email are required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNoStagedAvatar     = errors.New("no staged avatar")
	ErrDirectoryExhausted = errors.New("no free user id left")
)

const (
	userIDMin      = 100
	userIDSpan     = 900
	joinDateLayout = "Jan 02, 2006"
)

type CreateUserRequest struct {
	Name  string         `json:"name" validate:"required"`
	Email string         `json:"email" validate:"required"`
	Role  models.AppRole `json:"role,omitempty" validate:"omitempty,app_role"`
}

// UserDirectory is the in-memory account list managed from the admin console.
type UserDirectory struct {
	mu    sync.RWMutex
	users []models.ManagedUser
	now   func() time.Time
	intn  func(int) int
}

func NewUserDirectory(seed []models.ManagedUser) *UserDirectory {
	users := make([]models.ManagedUser, len(seed))
	copy(users, seed)
	return &UserDirectory{
		users: users,
		now:   time.Now,
		intn:  utils.RandomIntn,
	}
}

func (d *UserDirectory) List() []models.ManagedUser {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.ManagedUser, len(d.users))
	copy(out, d.users)
	return out
}

func (d *UserDirectory) Get(id string) (models.ManagedUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.indexOf(id)
	if i < 0 {
		return models.ManagedUser{}, ErrUserNotFound
	}
	return d.users[i], nil
}

// Search matches query case-insensitively against name, email, role and id.
func (d *UserDirectory) Search(query string) []models.ManagedUser {
	d.mu.RLock()
	defer d.mu.RUnlock()

	q := strings.ToLower(query)
	result := []models.ManagedUser{}
	for _, u := range d.users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(string(u.Role)), q) ||
			strings.Contains(strings.ToLower(u.ID), q) {
			result = append(result, u)
		}
	}
	return result
}

// Create prepends a new account. Only name and email are checked.
func (d *UserDirectory) Create(req CreateUserRequest) (models.ManagedUser, error) {
	if req.Name == "" || req.Email == "" {
		return models.ManagedUser{}, ErrInvalidUser
	}

	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}
	if !role.Valid() {
		return models.ManagedUser{}, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.freeID()
	if err != nil {
		return models.ManagedUser{}, err
	}

	firstName := strings.ToLower(strings.Split(req.Name, " ")[0])
	user := models.ManagedUser{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Role:       role,
		JoinedDate: d.now().Format(joinDateLayout),
		Avatar:     fmt.Sprintf("https://picsum.photos/seed/%s/100/100", firstName),
	}

	d.users = append([]models.ManagedUser{user}, d.users...)
	return user, nil
}

// UpdateRole overwrites the role of id.
func (d *UserDirectory) UpdateRole(id string, role models.AppRole) (models.ManagedUser, error) {
	if !role.Valid() {
		return models.ManagedUser{}, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	return d.update(id, func(u *models.ManagedUser) error {
		u.Role = role
		return nil
	})
}

// StageAvatar keeps dataURL as a preview without changing the avatar.
func (d *UserDirectory) StageAvatar(id, dataURL string) (models.ManagedUser, error) {
	return d.update(id, func(u *models.ManagedUser) error {
		u.PendingAvatar = dataURL
		return nil
	})
}

// CommitAvatar replaces the avatar with the staged preview.
func (d *UserDirectory) CommitAvatar(id string) (models.ManagedUser, error) {
	return d.update(id, func(u *models.ManagedUser) error {
		if u.PendingAvatar == "" {
			return ErrNoStagedAvatar
		}
		u.Avatar = u.PendingAvatar
		u.PendingAvatar = ""
		return nil
	})
}

func (d *UserDirectory) DiscardAvatar(id string) (models.ManagedUser, error) {
	return d.update(id, func(u *models.ManagedUser) error {
		u.PendingAvatar = ""
		return nil
	})
}

func (d *UserDirectory) Delete(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return ErrUserNotFound
	}
	d.users = append(d.users[:i], d.users[i+1:]...)
	return nil
}

func (d *UserDirectory) update(id string, fn func(*models.ManagedUser) error) (models.ManagedUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return models.ManagedUser{}, ErrUserNotFound
	}
	if err := fn(&d.users[i]); err != nil {
		return models.ManagedUser{}, err
	}
	return d.users[i], nil
}

func (d *UserDirectory) indexOf(id string) int {
	for i, u := range d.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// freeID draws random ids until one is unused. Callers hold d.mu.
func (d *UserDirectory) freeID() (string, error) {
	taken := make(map[string]bool, len(d.users))
	for _, u := range d.users {
		taken[u.ID] = true
	}

	for attempt := 0; attempt < userIDSpan*4; attempt++ {
		id := fmt.Sprintf("USR-%d", userIDMin+d.intn(userIDSpan))
		if !taken[id] {
			return id, nil
		}
	}

	// random draws keep colliding, scan for any gap
	for n := userIDMin; n < userIDMin+userIDSpan; n++ {
		if id := fmt.Sprintf("USR-%d", n); !taken[id] {
			return id, nil
		}
	}
	return "", ErrDirectoryExhausted
}
