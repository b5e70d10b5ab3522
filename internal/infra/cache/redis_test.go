package cache_test

import (
	"context"
	"errors"
	"time"

	"prospectar-server/internal/infra/cache"
	mockcache "prospectar-server/test/unit/doubles/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("RedisCache", func() {
	var (
		redisCache      *cache.RedisCache
		mockCacheClient *mockcache.MockCacheClient
		ctrl            *gomock.Controller
		ctx             context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		mockCacheClient = mockcache.NewMockCacheClient(ctrl)
		redisCache = cache.NewRedisCacheWithClient(mockCacheClient, cache.DefaultRedisConfig())
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.Context("Get", func() {
		ginkgo.It("should return stored bytes", func() {
			cmd := redis.NewStringCmd(ctx, "get", "k")
			cmd.SetVal("snapshot")
			mockCacheClient.EXPECT().Get(gomock.Any(), "k").Return(cmd)

			value, found := redisCache.Get(ctx, "k")
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(value).To(gomega.Equal([]byte("snapshot")))
		})

		ginkgo.It("should treat redis.Nil as a miss", func() {
			cmd := redis.NewStringCmd(ctx, "get", "k")
			cmd.SetErr(redis.Nil)
			mockCacheClient.EXPECT().Get(gomock.Any(), "k").Return(cmd)

			_, found := redisCache.Get(ctx, "k")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Set", func() {
		ginkgo.It("should pass the ttl through", func() {
			mockCacheClient.EXPECT().
				Set(gomock.Any(), "k", []byte("v"), time.Minute).
				Return(redis.NewStatusCmd(ctx, "OK"))

			gomega.Expect(redisCache.Set(ctx, "k", []byte("v"), time.Minute)).To(gomega.BeTrue())
		})

		ginkgo.It("should report failures", func() {
			cmd := redis.NewStatusCmd(ctx)
			cmd.SetErr(errors.New("connection refused"))
			mockCacheClient.EXPECT().Set(gomock.Any(), "k", gomock.Any(), gomock.Any()).Return(cmd)

			gomega.Expect(redisCache.Set(ctx, "k", []byte("v"), 0)).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Delete", func() {
		ginkgo.It("should delete the key", func() {
			mockCacheClient.EXPECT().Del(gomock.Any(), "k").Return(redis.NewIntCmd(ctx))

			redisCache.Delete(ctx, "k")
		})
	})

	ginkgo.Context("GetOrSet", func() {
		ginkgo.It("should load and store on a miss", func() {
			miss := redis.NewStringCmd(ctx, "get", "k")
			miss.SetErr(redis.Nil)
			mockCacheClient.EXPECT().Get(gomock.Any(), "k").Return(miss)
			mockCacheClient.EXPECT().
				Set(gomock.Any(), "k", []byte("loaded"), time.Minute).
				Return(redis.NewStatusCmd(ctx, "OK"))

			value, err := redisCache.GetOrSet(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
				return []byte("loaded"), nil
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(value).To(gomega.Equal([]byte("loaded")))
		})

		ginkgo.It("should skip the loader on a hit", func() {
			hit := redis.NewStringCmd(ctx, "get", "k")
			hit.SetVal("cached")
			mockCacheClient.EXPECT().Get(gomock.Any(), "k").Return(hit)

			value, err := redisCache.GetOrSet(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
				ginkgo.Fail("loader should not run")
				return nil, nil
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(value).To(gomega.Equal([]byte("cached")))
		})
	})
})
