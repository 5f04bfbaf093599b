package paging_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paging "github.com/nrfta/videohub"
)

var _ = Describe("StoreError", func() {
	It("returns nil for a nil error", func() {
		Expect(paging.NewStoreError("fetch", nil)).To(BeNil())
	})

	It("classifies store failures as unavailable", func() {
		err := paging.NewStoreError("fetch comments", errors.New("connection refused"))
		Expect(errors.Is(err, paging.ErrDataStoreUnavailable)).To(BeTrue())
		Expect(err.Error()).To(Equal("fetch comments: connection refused"))
	})

	It("keeps cancellation distinct from an unavailable store", func() {
		err := paging.NewStoreError("fetch", fmt.Errorf("query: %w", context.Canceled))
		Expect(errors.Is(err, paging.ErrDataStoreUnavailable)).To(BeFalse())
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("keeps deadlines distinct from an unavailable store", func() {
		err := paging.NewStoreError("count", context.DeadlineExceeded)
		Expect(errors.Is(err, paging.ErrDataStoreUnavailable)).To(BeFalse())
	})
})

var _ = Describe("CursorError", func() {
	It("matches ErrMalformedCursor", func() {
		err := fmt.Errorf("decode: %w", &paging.CursorError{Reason: "not base64"})
		Expect(errors.Is(err, paging.ErrMalformedCursor)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("malformed cursor: not base64"))
	})
})
