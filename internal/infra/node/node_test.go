package node_test

import (
	"net"

	"prospectar-server/internal/infra/node"
	"prospectar-server/internal/infra/utils"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Node", func() {
	ginkgo.It("should describe the process once", func() {
		first := node.GetInfo()
		second := node.GetInfo()

		gomega.Expect(first).To(gomega.Equal(second))
		gomega.Expect(utils.IsUUID(first.ID)).To(gomega.BeTrue())
		gomega.Expect(first.Hostname).NotTo(gomega.BeEmpty())
	})

	ginkgo.It("should report a parseable IPv4 address", func() {
		ip := net.ParseIP(node.GetInfo().IPAddress)
		gomega.Expect(ip).NotTo(gomega.BeNil())
		gomega.Expect(ip.To4()).NotTo(gomega.BeNil())
	})

	ginkgo.It("should expose the build metadata", func() {
		gomega.Expect(node.GetInfo().Version).To(gomega.Equal(node.Version))
		gomega.Expect(node.GetInfo().CommitHash).To(gomega.Equal(node.CommitHash))
	})
})
