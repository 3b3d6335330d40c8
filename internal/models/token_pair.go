package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair — пара учётных данных администратора, как её отдаёт бэкенд
// при логине и обновлении (POST /admin/auth/refresh).
//
// Описание:
//   - AccessToken — короткоживущий bearer-токен для запросов к API;
//   - RefreshToken — долгоживущий секрет, используется только для выпуска новой пары;
//   - TokenType — тип токена (обычно "Bearer");
//   - ExpiresIn — срок жизни access-токена в секундах на момент выдачи.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// RefreshRequest — тело запроса на обновление пары.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginRequest — тело запроса POST /admin/auth/login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ErrorPayload — формат ошибки бэкенда.
type ErrorPayload struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message,omitempty"`
}

// SessionEvent — сигнал «сессия инвалидирована, нужен повторный вход».
type SessionEvent struct {
	Reason    string    `json:"reason"`
	LoginPath string    `json:"login_path"`
	At        time.Time `json:"at"`
}

// SessionClaims — то, что удаётся прочитать из access-токена без проверки подписи.
type SessionClaims struct {
	Subject   string    `json:"subject"`
	Issuer    string    `json:"issuer,omitempty"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// ErrOpaqueToken — access-токен не является JWT.
var ErrOpaqueToken = errors.New("access token is not a jwt")

// Claims разбирает access-токен как JWT без проверки подписи: ключа у консоли нет,
// а подлинность токена проверяет бэкенд. Используется только для отображения.
func (p TokenPair) Claims() (SessionClaims, error) {
	if p.AccessToken == "" {
		return SessionClaims{}, ErrOpaqueToken
	}

	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(p.AccessToken, &rc); err != nil {
		return SessionClaims{}, errors.Join(ErrOpaqueToken, err)
	}

	out := SessionClaims{
		Subject: rc.Subject,
		Issuer:  rc.Issuer,
	}
	if rc.IssuedAt != nil {
		out.IssuedAt = rc.IssuedAt.UTC()
	}
	if rc.ExpiresAt != nil {
		out.ExpiresAt = rc.ExpiresAt.UTC()
	}

	return out, nil
}
