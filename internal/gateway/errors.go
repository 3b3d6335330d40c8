package gateway

import "errors"

var (
	// ErrSessionExpired — обновить учётные данные не удалось, хранилище очищено,
	// подписчики получили SessionEvent. Оператору нужно войти заново.
	// HTTP-слой консоли: 401 + Location на страницу входа.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoRefreshToken — в хранилище нет refresh-токена, обновлять нечем.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrRefreshRejected — бэкенд ответил на refresh не-2xx.
	ErrRefreshRejected = errors.New("refresh rejected")

	// ErrMalformedRefresh — 2xx на refresh, но тело не разобрать
	// или в нём нет accessToken. Обрабатывается как отказ.
	ErrMalformedRefresh = errors.New("malformed refresh response")
)
