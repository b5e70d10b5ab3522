package usecases_test

import (
	"context"

	"prospectar-server/internal/custom_fields/domain"
	"prospectar-server/internal/custom_fields/usecases"
	"prospectar-server/internal/infra/pubsub"
	"prospectar-server/internal/shared_kernel/avro"
	shareddomain "prospectar-server/internal/shared_kernel/domain"
	mockusecases "prospectar-server/test/unit/doubles/custom_fields/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("CacheInvalidationWorker", func() {
	var (
		ctrl        *gomock.Controller
		definitions *mockusecases.MockFieldDefinitionService
		broker      *pubsub.MemoryBroker
		publisher   pubsub.Publisher
		cancel      context.CancelFunc
		stopped     chan struct{}
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		definitions = mockusecases.NewMockFieldDefinitionService(ctrl)
		broker = pubsub.NewMemoryBroker()

		var err error
		publisher, err = pubsub.NewMemoryPublisherFactoryWithBroker(broker).New(usecases.DefinitionsTopic, &avro.AvroCustomField{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		worker := usecases.NewCacheInvalidationWorker(pubsub.NewMemoryConsumerFactoryWithBroker(broker, "replica-b"), definitions)
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		stopped = make(chan struct{})
		go worker.Run(ctx, func() { close(stopped) })
	})

	ginkgo.AfterEach(func() {
		cancel()
		gomega.Eventually(stopped).Should(gomega.BeClosed())
	})

	ginkgo.It("should invalidate the tenant of every published definition", func() {
		invalidated := make(chan shareddomain.ID, 1)
		definitions.EXPECT().Invalidate(gomock.Any(), shareddomain.ID("tenant-9")).Do(func(_ context.Context, tenantID shareddomain.ID) {
			invalidated <- tenantID
		})

		field := mustBuild(domain.NewFieldDefinitionBuilder().
			WithTenantID("tenant-9").
			WithName("Industry").
			WithType(domain.FieldTypeText))

		gomega.Eventually(func() shareddomain.ID {
			_ = publisher.Publish(context.Background(), pubsub.Key(field.ID), field)
			select {
			case tenantID := <-invalidated:
				return tenantID
			default:
				return ""
			}
		}).Should(gomega.Equal(shareddomain.ID("tenant-9")))
	})
})
