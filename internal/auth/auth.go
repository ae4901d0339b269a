// Package auth resolves request credentials to an acting user. Accounts
// and sessions are process-resident; a restart logs everyone out.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/pbkdf2"

	"canteen/internal/errs"
	"canteen/internal/models"
)

const (
	pbkdf2Iterations = 10000
	pbkdf2KeyLen     = 32
	saltBytes        = 16
)

var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(.*)$`)

// SignupRequest is the account-creation input. Email or phone is required
// alongside name and password.
type SignupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	RollNumber string `json:"rollNumber"`
}

// Manager owns users and sessions. Tokens are signed JWTs carrying a
// session id; revocation works by deleting the session, so a structurally
// valid token dies with its session.
type Manager struct {
	mu       sync.RWMutex
	users    []*models.User
	sessions map[string]models.Session
	secret   []byte
	log      *zap.Logger
}

func NewManager(secret string, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]models.Session),
		secret:   []byte(secret),
		log:      log,
	}
}

// Signup registers a new account and opens a session for it. Duplicate
// email or phone is a conflict.
func (m *Manager) Signup(req SignupRequest) (string, models.PublicUser, error) {
	if req.Name == "" || req.Password == "" || (req.Email == "" && req.Phone == "") {
		return "", models.PublicUser{}, errs.New(errs.InvalidInput, "missing_fields")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findByContact(req.Email, req.Phone) != nil {
		return "", models.PublicUser{}, errs.New(errs.Conflict, "user_exists")
	}

	role := models.RoleStudent
	if req.Role != "" {
		role = models.Role(req.Role)
	}
	salt := newSalt()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Role:         role,
		Email:        req.Email,
		Phone:        req.Phone,
		RollNumber:   req.RollNumber,
		PasswordHash: hashPassword(req.Password, salt),
		Salt:         salt,
		CreatedAt:    time.Now(),
	}
	m.users = append(m.users, user)

	token, err := m.openSession(user.ID)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, user.Public(), nil
}

// Login verifies credentials and opens a session. An unknown contact is
// NotFound; a wrong password is InvalidCredentials.
func (m *Manager) Login(email, phone, password string) (string, models.PublicUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := m.findByContact(email, phone)
	if user == nil {
		return "", models.PublicUser{}, errs.New(errs.NotFound, "not_found")
	}
	if hashPassword(password, user.Salt) != user.PasswordHash {
		return "", models.PublicUser{}, errs.New(errs.InvalidCredentials, "invalid_credentials")
	}

	token, err := m.openSession(user.ID)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, user.Public(), nil
}

// Authenticate resolves an Authorization header to the acting user.
func (m *Manager) Authenticate(authorization string) (models.User, bool) {
	sid, ok := m.sessionID(authorization)
	if !ok {
		return models.User{}, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[sid]
	if !ok {
		return models.User{}, false
	}
	for _, u := range m.users {
		if u.ID == sess.UserID {
			return *u, true
		}
	}
	return models.User{}, false
}

// Logout revokes the session named by the header, if any.
func (m *Manager) Logout(authorization string) {
	sid, ok := m.sessionID(authorization)
	if !ok {
		return
	}
	m.mu.Lock()
	delete(m.sessions, sid)
	m.mu.Unlock()
}

// SeedFromFile loads accounts from a JSON array at path. The path is
// best-effort: a missing or malformed file seeds nothing and surfaces no
// error.
func (m *Manager) SeedFromFile(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var records []struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Password   string `json:"password"`
		Role       string `json:"role"`
		RollNumber string `json:"rollNumber"`
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		name := r.Name
		if name == "" {
			name = "User"
		}
		role := models.RoleStudent
		if r.Role != "" {
			role = models.Role(r.Role)
		}
		salt := newSalt()
		m.users = append(m.users, &models.User{
			ID:           uuid.NewString(),
			Name:         name,
			Role:         role,
			Email:        r.Email,
			Phone:        r.Phone,
			RollNumber:   r.RollNumber,
			PasswordHash: hashPassword(r.Password, salt),
			Salt:         salt,
			CreatedAt:    time.Now(),
		})
	}
	m.log.Info("seed users loaded", zap.Int("count", len(records)))
}

// findByContact must be called with the lock held. Matching mirrors login:
// email first, then phone, empty values never match.
func (m *Manager) findByContact(email, phone string) *models.User {
	for _, u := range m.users {
		if email != "" && u.Email == email {
			return u
		}
		if phone != "" && u.Phone == phone {
			return u
		}
	}
	return nil
}

// openSession must be called with the lock held.
func (m *Manager) openSession(userID string) (string, error) {
	sid := uuid.NewString()
	now := time.Now()
	m.sessions[sid] = models.Session{ID: sid, UserID: userID, CreatedAt: now}

	claims := jwt.MapClaims{
		"sid": sid,
		"uid": userID,
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		delete(m.sessions, sid)
		return "", err
	}
	return signed, nil
}

// sessionID parses and verifies the bearer token, returning the embedded
// session id.
func (m *Manager) sessionID(authorization string) (string, bool) {
	match := bearerPattern.FindStringSubmatch(authorization)
	if match == nil {
		return "", false
	}

	token, err := jwt.Parse(match[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sid, ok := claims["sid"].(string)
	return sid, ok
}

func hashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(key)
}

func newSalt() string {
	b := make([]byte, saltBytes)
	rand.Read(b)
	return hex.EncodeToString(b)
}
