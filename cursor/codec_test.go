package cursor_test

import (
	"encoding/base64"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/cursor"
)

var _ = Describe("Codec", func() {
	var pos paging.CursorPosition

	BeforeEach(func() {
		pos = paging.CursorPosition{
			SortValue:  time.Date(2024, 1, 2, 3, 4, 5, 123456789, time.UTC),
			TieBreakID: "0b9c3f1e-5a7d-4c1e-9f0a-2d8e6b4a1c3f",
		}
	})

	It("round trips a position", func() {
		decoded, err := cursor.Decode(cursor.Encode(pos))
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded.SortValue.Equal(pos.SortValue)).To(BeTrue())
		Expect(decoded.TieBreakID).To(Equal(pos.TieBreakID))
	})

	It("produces URL safe output without padding", func() {
		encoded := cursor.Encode(pos)
		Expect(encoded).ToNot(ContainSubstring("="))
		Expect(encoded).ToNot(ContainSubstring("+"))
		Expect(encoded).ToNot(ContainSubstring("/"))
	})

	It("renders the timestamp in UTC with fixed precision", func() {
		local := pos
		local.SortValue = time.Date(2024, 1, 2, 5, 4, 5, 0, time.FixedZone("EET", 2*60*60))

		raw, err := base64.RawURLEncoding.DecodeString(cursor.Encode(local))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(raw)).To(Equal(`{"t":"2024-01-02T03:04:05.000000000Z","i":"0b9c3f1e-5a7d-4c1e-9f0a-2d8e6b4a1c3f"}`))
	})

	It("canonicalises upper case identifiers", func() {
		pos.TieBreakID = "0B9C3F1E-5A7D-4C1E-9F0A-2D8E6B4A1C3F"
		decoded, err := cursor.Decode(cursor.Encode(pos))
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded.TieBreakID).To(Equal("0b9c3f1e-5a7d-4c1e-9f0a-2d8e6b4a1c3f"))
	})

	It("is exposed through paging.CursorCodec", func() {
		var codec paging.CursorCodec = cursor.NewCodec()
		decoded, err := codec.Decode(codec.Encode(pos))
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded.TieBreakID).To(Equal(pos.TieBreakID))
	})

	DescribeTable("rejects malformed cursors",
		func(raw string) {
			decoded, err := cursor.Decode(raw)
			Expect(decoded).To(BeNil())
			Expect(errors.Is(err, paging.ErrMalformedCursor)).To(BeTrue())
		},
		Entry("empty", ""),
		Entry("not base64", "!!!not-base64!!!"),
		Entry("not JSON", base64.RawURLEncoding.EncodeToString([]byte("created_at|id"))),
		Entry("missing timestamp", base64.RawURLEncoding.EncodeToString([]byte(`{"i":"0b9c3f1e-5a7d-4c1e-9f0a-2d8e6b4a1c3f"}`))),
		Entry("bad timestamp", base64.RawURLEncoding.EncodeToString([]byte(`{"t":"yesterday","i":"0b9c3f1e-5a7d-4c1e-9f0a-2d8e6b4a1c3f"}`))),
		Entry("missing identifier", base64.RawURLEncoding.EncodeToString([]byte(`{"t":"2024-01-02T03:04:05.000000000Z"}`))),
		Entry("identifier not UUID shaped", base64.RawURLEncoding.EncodeToString([]byte(`{"t":"2024-01-02T03:04:05.000000000Z","i":"user-123"}`))),
		Entry("hyphenless UUID", base64.RawURLEncoding.EncodeToString([]byte(`{"t":"2024-01-02T03:04:05.000000000Z","i":"0b9c3f1e5a7d4c1e9f0a2d8e6b4a1c3f"}`))),
		Entry("SQL injection attempt", "'; DROP TABLE comments; --"),
	)
})

var _ = Describe("Compare", func() {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := paging.CursorPosition{SortValue: t0, TieBreakID: "00000000-0000-4000-8000-00000000000a"}
	b := paging.CursorPosition{SortValue: t0, TieBreakID: "00000000-0000-4000-8000-00000000000b"}
	later := paging.CursorPosition{SortValue: t0.Add(time.Microsecond), TieBreakID: "00000000-0000-4000-8000-000000000001"}

	It("orders by sort value first", func() {
		Expect(cursor.Compare(b, later)).To(BeNumerically("<", 0))
		Expect(cursor.Compare(later, a)).To(BeNumerically(">", 0))
	})

	It("breaks ties by identifier", func() {
		Expect(cursor.Compare(a, b)).To(BeNumerically("<", 0))
		Expect(cursor.Compare(b, a)).To(BeNumerically(">", 0))
		Expect(cursor.Compare(a, a)).To(Equal(0))
	})

	It("treats the boundary itself as not before", func() {
		Expect(cursor.Before(a, b)).To(BeTrue())
		Expect(cursor.Before(b, b)).To(BeFalse())
		Expect(cursor.Before(later, b)).To(BeFalse())
	})
})
