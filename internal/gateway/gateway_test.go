package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/events-admin-console/internal/models"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore/mocks"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{BaseURL: "http://api.local"})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "/relative", Store: tokenstore.NewMemory()})
	require.Error(t, err)

	c, err := New(Options{BaseURL: "http://api.local/", Store: tokenstore.NewMemory()})
	require.NoError(t, err)
	require.Equal(t, DefaultLoginPath, c.LoginPath())
	require.Equal(t, "http://api.local/admin/events", c.url("admin/events"))
	require.Equal(t, "http://api.local/admin/events?page=1", c.url("/admin/events?page=1"))
}

func TestDo_AttachesBearerWhenPresent(t *testing.T) {
	f := newFixture(t, &newPair)

	resp, err := f.client.Do(context.Background(), "/admin/events", Request{})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	readBody(t, resp)

	hits := f.backend.snapshot()
	require.Len(t, hits, 1)
	require.Equal(t, "Bearer new", hits[0].Auth)
	require.Equal(t, http.MethodGet, hits[0].Method)
}

func TestDo_NoCredential_NoHeader(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.resourceHandler = func(w http.ResponseWriter, _ *http.Request, _ hit) {
		writeJSON(w, http.StatusOK, map[string]bool{"public": true})
	}

	resp, err := f.client.Do(context.Background(), "/public", Request{})
	require.NoError(t, err)
	readBody(t, resp)

	hits := f.backend.snapshot()
	require.Len(t, hits, 1)
	require.Empty(t, hits[0].Auth)
	require.Zero(t, f.backend.refreshCalls.Load())
}

func TestDo_ContentTypeInference(t *testing.T) {
	tests := []struct {
		name   string
		req    func(t *testing.T) Request
		wantCT string
		check  func(t *testing.T, h hit)
	}{
		{
			name:   "no body",
			req:    func(*testing.T) Request { return Request{Method: http.MethodDelete} },
			wantCT: "",
		},
		{
			name: "struct is json",
			req: func(*testing.T) Request {
				return Request{Method: http.MethodPost, Body: models.RejectEventRequest{Reason: "spam"}}
			},
			wantCT: "application/json",
			check: func(t *testing.T, h hit) {
				require.JSONEq(t, `{"reason":"spam"}`, h.Body)
			},
		},
		{
			name:   "raw bytes default to json",
			req:    func(*testing.T) Request { return Request{Method: http.MethodPost, Body: []byte(`{"a":1}`)} },
			wantCT: "application/json",
		},
		{
			name: "explicit content type kept",
			req: func(*testing.T) Request {
				return Request{
					Method: http.MethodPost,
					Header: http.Header{"Content-Type": []string{"text/plain"}},
					Body:   "hello",
				}
			},
			wantCT: "text/plain",
			check: func(t *testing.T, h hit) {
				require.Equal(t, "hello", h.Body)
			},
		},
		{
			name: "form is multipart, never json",
			req: func(t *testing.T) Request {
				form := NewForm()
				require.NoError(t, form.Field("title", "Mug"))
				require.NoError(t, form.File("image", "mug.png", "image/png", []byte("PNG")))
				return Request{Method: http.MethodPost, Body: form}
			},
			wantCT: "multipart/form-data",
			check: func(t *testing.T, h hit) {
				_, params, err := mime.ParseMediaType(h.ContentType)
				require.NoError(t, err)

				mr := multipart.NewReader(strings.NewReader(h.Body), params["boundary"])
				form, err := mr.ReadForm(1 << 20)
				require.NoError(t, err)
				require.Equal(t, []string{"Mug"}, form.Value["title"])
				require.Len(t, form.File["image"], 1)
				require.Equal(t, "mug.png", form.File["image"][0].Filename)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &newPair)

			resp, err := f.client.Do(context.Background(), "/admin/things", tt.req(t))
			require.NoError(t, err)
			readBody(t, resp)

			hits := f.backend.snapshot()
			require.Len(t, hits, 1)
			if tt.wantCT == "" {
				require.Empty(t, hits[0].ContentType)
			} else {
				require.True(t, strings.HasPrefix(hits[0].ContentType, tt.wantCT), hits[0].ContentType)
			}
			if tt.check != nil {
				tt.check(t, hits[0])
			}
		})
	}
}

func TestDo_NonExpiryErrorPassesThrough(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "other error code", status: http.StatusForbidden, body: `{"errorCode":"AD2001","message":"forbidden"}`},
		{name: "not json", status: http.StatusInternalServerError, body: "oops"},
		{name: "empty body", status: http.StatusBadGateway, body: ""},
		{name: "expiry-looking 200", status: http.StatusOK, body: `{"errorCode":"AD1009"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &oldPair)
			f.backend.resourceHandler = func(w http.ResponseWriter, _ *http.Request, _ hit) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}

			resp, err := f.client.Do(context.Background(), "/admin/events", Request{})
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)
			require.Equal(t, tt.body, readBody(t, resp))

			require.Zero(t, f.backend.refreshCalls.Load())
			require.Len(t, f.backend.snapshot(), 1)
			require.Zero(t, f.listener.count())
		})
	}
}

func TestDo_LargeErrorBodyRestoredAfterProbe(t *testing.T) {
	f := newFixture(t, &newPair)
	big := strings.Repeat("x", maxProbeBytes*2+17)
	f.backend.resourceHandler = func(w http.ResponseWriter, _ *http.Request, _ hit) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, big)
	}

	resp, err := f.client.Do(context.Background(), "/admin/events", Request{})
	require.NoError(t, err)
	require.Equal(t, big, readBody(t, resp))
}

func TestDo_NetworkErrorPropagates(t *testing.T) {
	f := newFixture(t, &oldPair)
	f.backend.srv.Close()

	resp, err := f.client.Do(context.Background(), "/admin/events", Request{})
	require.Error(t, err)
	require.Nil(t, resp)
	require.False(t, errors.Is(err, ErrSessionExpired))
	require.Zero(t, f.listener.count())

	pair, err := f.store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, oldPair, pair)
}

func TestDo_StoreReadFailure_SendsUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Get(gomock.Any()).Return(models.TokenPair{}, errors.New("redis down"))

	b := newBackend(t)
	b.resourceHandler = func(w http.ResponseWriter, _ *http.Request, _ hit) {
		writeJSON(w, http.StatusOK, map[string]string{})
	}

	c, err := New(Options{BaseURL: b.srv.URL, Store: st})
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), "/admin/events", Request{})
	require.NoError(t, err)
	readBody(t, resp)

	hits := b.snapshot()
	require.Len(t, hits, 1)
	require.Empty(t, hits[0].Auth)
}

func TestDo_UnencodableBody(t *testing.T) {
	f := newFixture(t, &newPair)

	_, err := f.client.Do(context.Background(), "/admin/events", Request{Method: http.MethodPost, Body: make(chan int)})
	require.Error(t, err)
	require.Empty(t, f.backend.snapshot())
}

func TestDo_ResponseBodyIsCallers(t *testing.T) {
	f := newFixture(t, &newPair)

	resp, err := f.client.Do(context.Background(), "/admin/events/7", Request{})
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.NoError(t, resp.Body.Close())
	require.Equal(t, "/admin/events/7", got["path"])
}
