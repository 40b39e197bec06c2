package buildpipeline

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

//go:generate mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_trace_test.go sysyc/internal/trace Tracer
func TestBuildpipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Buildpipeline Suite")
}
