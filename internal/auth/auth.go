package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"Retrofit/internal/repo"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userLoginKey contextKey = "userLogin"

	cookieName = "session_token"
	sessionTTL = 30 * 24 * time.Hour
)

type Authenv struct {
	JWTkey []byte
	Repo   repo.UserRepository
}

type Claims struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// UserID returns the authenticated user stored by AuthMiddleware.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id != 0
}

func UserLogin(ctx context.Context) string {
	login, _ := ctx.Value(userLoginKey).(string)
	return login
}

// WithUser returns ctx carrying an authenticated user.
func WithUser(ctx context.Context, id int, login string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	return context.WithValue(ctx, userLoginKey, login)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Authenv) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 || claims.Login == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (env *Authenv) RedirectIfLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieName)
		if err == nil {
			if _, err := env.parse(cookie.Value); err == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware admits requests with a valid session cookie. API calls
// without one get 401, pages are redirected to the login form.
func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reject := func() {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/auth/", http.StatusSeeOther)
		}

		cookie, err := r.Cookie(cookieName)
		if err != nil {
			reject()
			return
		}
		claims, err := env.parse(cookie.Value)
		if err != nil {
			log.Printf("session token rejected: %v", err)
			reject()
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserID, claims.Login)))
	})
}

// Token signs a session token for the user.
func (env *Authenv) Token(userID int, login string, now time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Login:  login,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(env.JWTkey)
}

func (env *Authenv) addCookie(w http.ResponseWriter, userID int, login string) error {
	now := time.Now()
	tokenString, err := env.Token(userID, login, now)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    tokenString,
		Expires:  now.Add(sessionTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (env *Authenv) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Login, email and password required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		http.Error(w, "Password too short", http.StatusBadRequest)
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashedPassword)
	if err != nil {
		log.Printf("CreateUser error: %v", err)
		http.Error(w, "User already exists or DB error", http.StatusConflict)
		return
	}

	if err := env.addCookie(w, id, req.Login); err != nil {
		log.Printf("session token error: %v", err)
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Registration successful"))
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password required", http.StatusBadRequest)
		return
	}

	id, storedHash, err := env.Repo.GetByLogin(r.Context(), req.Login)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Printf("GetByLogin error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}
	if err := env.addCookie(w, id, req.Login); err != nil {
		log.Printf("session token error: %v", err)
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Authentication successful"))
}
