package domain_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"todoapi/internal/core/domain"
)

func TestParseStatus(t *testing.T) {
	RegisterTestingT(t)

	for _, status := range domain.Statuses() {
		parsed, err := domain.ParseStatus(status.String())

		Expect(err).To(BeNil())
		Expect(parsed).To(Equal(status))
	}
}

func TestParseStatusRejectsUnknownTokens(t *testing.T) {
	RegisterTestingT(t)

	for _, token := range []string{"", "done", "PENDING", "in-progress", "pending "} {
		_, err := domain.ParseStatus(token)

		Expect(err).To(HaveOccurred(), "token %q", token)
	}
}

func TestStatusIsValid(t *testing.T) {
	RegisterTestingT(t)

	Expect(domain.StatusPending.IsValid()).To(BeTrue())
	Expect(domain.StatusInProgress.IsValid()).To(BeTrue())
	Expect(domain.StatusCompleted.IsValid()).To(BeTrue())
	Expect(domain.Status("archived").IsValid()).To(BeFalse())
}
