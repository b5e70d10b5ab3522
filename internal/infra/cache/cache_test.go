package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"prospectar-server/internal/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("RistrettoCache", func() {
	var (
		cacheInstance *cache.RistrettoCache
		ctx           context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		cacheInstance, err = cache.New(nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		cacheInstance.Close()
	})

	ginkgo.Context("Set and Get", func() {
		ginkgo.It("should return what was stored", func() {
			gomega.Expect(cacheInstance.Set(ctx, "k", []byte("v"), 0)).To(gomega.BeTrue())

			value, found := cacheInstance.Get(ctx, "k")
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(value).To(gomega.Equal([]byte("v")))
		})

		ginkgo.It("should report a miss for unknown keys", func() {
			_, found := cacheInstance.Get(ctx, "missing")
			gomega.Expect(found).To(gomega.BeFalse())
		})

		ginkgo.It("should expire entries after their ttl", func() {
			cacheInstance.Set(ctx, "short", []byte("v"), 50*time.Millisecond)

			gomega.Eventually(func() bool {
				_, found := cacheInstance.Get(ctx, "short")
				return found
			}).WithTimeout(2 * time.Second).Should(gomega.BeFalse())
		})
	})

	ginkgo.Context("Delete", func() {
		ginkgo.It("should remove the entry", func() {
			cacheInstance.Set(ctx, "k", []byte("v"), 0)
			cacheInstance.Delete(ctx, "k")

			_, found := cacheInstance.Get(ctx, "k")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("GetOrSet", func() {
		ginkgo.It("should call the loader once for concurrent misses", func() {
			var calls atomic.Int32
			release := make(chan struct{})
			loader := func(context.Context) ([]byte, error) {
				calls.Add(1)
				<-release
				return []byte("loaded"), nil
			}

			var wg sync.WaitGroup
			results := make([][]byte, 5)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], _ = cacheInstance.GetOrSet(ctx, "shared", time.Minute, loader)
				}(i)
			}

			gomega.Eventually(calls.Load).Should(gomega.Equal(int32(1)))
			time.Sleep(20 * time.Millisecond)
			close(release)
			wg.Wait()

			gomega.Expect(calls.Load()).To(gomega.Equal(int32(1)))
			for _, result := range results {
				gomega.Expect(result).To(gomega.Equal([]byte("loaded")))
			}
		})

		ginkgo.It("should not cache loader failures", func() {
			boom := errors.New("boom")
			_, err := cacheInstance.GetOrSet(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
				return nil, boom
			})
			gomega.Expect(err).To(gomega.MatchError(boom))

			value, err := cacheInstance.GetOrSet(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
				return []byte("second"), nil
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(value).To(gomega.Equal([]byte("second")))
		})

		ginkgo.It("should let a cancelled caller leave while the load completes", func() {
			release := make(chan struct{})
			callerCtx, cancel := context.WithCancel(ctx)

			done := make(chan error, 1)
			go func() {
				_, err := cacheInstance.GetOrSet(callerCtx, "slow", time.Minute, func(loadCtx context.Context) ([]byte, error) {
					<-release
					return []byte("late"), loadCtx.Err()
				})
				done <- err
			}()

			cancel()
			gomega.Eventually(done).Should(gomega.Receive(gomega.MatchError(context.Canceled)))

			close(release)
			gomega.Eventually(func() []byte {
				value, _ := cacheInstance.Get(ctx, "slow")
				return value
			}).Should(gomega.Equal([]byte("late")))
		})
	})
})
