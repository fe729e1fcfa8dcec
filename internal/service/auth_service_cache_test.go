package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hypenest/internal/cache"
	"hypenest/internal/model"
)

func newCachedFixture(t *testing.T) (*fixture, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })

	f := newFixture(t)
	f.svc.cache = client
	return f, mr
}

func TestAuthService_Me_ServesSecondCallFromCache(t *testing.T) {
	f, mr := newCachedFixture(t)
	id := uuid.New()
	brandID := uuid.New()
	f.accounts.On("FindByID", mock.Anything, id).Return(&model.Account{
		ID: id, Email: "b@x.com", Name: "B", Role: model.RoleBrand, BrandID: &brandID, IsVerified: true,
	}, nil).Once()

	first, err := f.svc.Me(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, mr.Exists(accountCacheKey(id)))

	second, err := f.svc.Me(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, model.RoleBrand, second.Role)
	assert.Equal(t, model.BrandRef(brandID), second.Profile)
	f.accounts.AssertNumberOfCalls(t, "FindByID", 1)

	raw, err := mr.Get(accountCacheKey(id))
	require.NoError(t, err)
	var stored model.AccountView
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, model.BrandRef(brandID), stored.Profile)
	assert.NotContains(t, raw, "password")
	ttl := mr.TTL(accountCacheKey(id))
	assert.True(t, ttl > 0 && ttl <= accountCacheTTL, "ttl %s", ttl)
}

func TestAuthService_VerifyOTP_EvictsCachedAccount(t *testing.T) {
	f, mr := newCachedFixture(t)
	id := uuid.New()
	now := time.Now()
	f.svc.now = func() time.Time { return now }

	f.accounts.On("FindByID", mock.Anything, id).Return(&model.Account{
		ID: id, Email: "a@x.com", Name: "A", Role: model.RoleAdmin,
	}, nil).Once()
	f.accounts.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.Account{ID: id, Email: "a@x.com"}, nil)
	f.otps.On("FindLatest", mock.Anything, id, "123456").Return(&model.OTP{
		AccountID: id, Code: "123456", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute),
	}, nil)
	f.accounts.On("MarkVerified", mock.Anything, id).Return(nil)
	f.accounts.On("FindByID", mock.Anything, id).Return(&model.Account{
		ID: id, Email: "a@x.com", Name: "A", Role: model.RoleAdmin, IsVerified: true,
	}, nil).Once()

	before, err := f.svc.Me(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, before.IsVerified)
	require.True(t, mr.Exists(accountCacheKey(id)))

	require.NoError(t, f.svc.VerifyOTP(context.Background(), "a@x.com", "123456"))
	assert.False(t, mr.Exists(accountCacheKey(id)))

	after, err := f.svc.Me(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, after.IsVerified, "stale unverified profile must not be served")
	f.accounts.AssertNumberOfCalls(t, "FindByID", 2)
}
