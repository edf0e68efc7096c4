package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lengolf/pos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setStaff injects an authenticated staff member, standing in for the JWT
// middleware.
func setStaff(staffID uuid.UUID, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("staff_id", staffID)
		c.Set("staff_name", "Nok")
		c.Set("staff_roles", roles)
		c.Next()
	}
}

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
}

func (r *memoryIdempotencyRepo) GetByKey(_ context.Context, key string, staffID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := r.keys[key]
	if !ok || ikey.StaffID != staffID {
		return nil, nil
	}
	return ikey, nil
}

func (r *memoryIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(_ context.Context) error {
	for key, ikey := range r.keys {
		if time.Now().After(ikey.ExpiresAt) {
			delete(r.keys, key)
		}
	}
	return nil
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		wantStatus int
	}{
		{name: "matching role passes", roles: []string{"manager"}, wantStatus: http.StatusOK},
		{name: "any of the required roles passes", roles: []string{"cashier", "admin"}, wantStatus: http.StatusOK},
		{name: "missing role is forbidden", roles: []string{"cashier"}, wantStatus: http.StatusForbidden},
		{name: "no roles is forbidden", roles: nil, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/printer/test",
				setStaff(uuid.New(), tt.roles...),
				RequireRole("manager", "admin"),
				func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) },
			)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/printer/test", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	staffID := uuid.New()

	calls := 0
	router := gin.New()
	router.POST("/print",
		setStaff(staffID),
		Idempotency(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"print": calls})
		},
	)

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/print", nil)
		req.Header.Set(IdempotencyKeyHeader, "print-abc")
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, calls)

	second := do()
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, calls, "handler must not run again for a replayed key")
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	repo := newMemoryIdempotencyRepo()

	calls := 0
	router := gin.New()
	router.POST("/print",
		setStaff(uuid.New()),
		Idempotency(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"print": calls})
		},
	)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/print", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 2, calls)
	assert.Empty(t, repo.keys)
}

func TestIdempotencyRequired_RejectsMissingKey(t *testing.T) {
	repo := newMemoryIdempotencyRepo()

	router := gin.New()
	router.POST("/settlements",
		setStaff(uuid.New()),
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"success": true}) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/settlements", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Idempotency-Key")
}

func TestDeleteExpiredSweepsOnlyExpiredKeys(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	staffID := uuid.New()

	require.NoError(t, repo.Create(context.Background(), &entity.IdempotencyKey{
		Key: "fresh", StaffID: staffID, ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(context.Background(), &entity.IdempotencyKey{
		Key: "stale", StaffID: staffID, ExpiresAt: time.Now().Add(-time.Hour),
	}))

	require.NoError(t, repo.DeleteExpired(context.Background()))

	fresh, err := repo.GetByKey(context.Background(), "fresh", staffID)
	require.NoError(t, err)
	assert.NotNil(t, fresh)

	stale, err := repo.GetByKey(context.Background(), "stale", staffID)
	require.NoError(t, err)
	assert.Nil(t, stale)
}
