package cursor_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/cursor"
)

var videoKeyset = paging.Keyset{Table: "videos", SortColumn: "updated_at", IDColumn: "id"}

type failingFetcher struct {
	fetchErr error
	countErr error
	fetches  int
}

func (f *failingFetcher) Fetch(_ context.Context, _ paging.FetchParams) ([]*testVideo, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return []*testVideo{}, nil
}

func (f *failingFetcher) Count(_ context.Context, _ paging.FetchParams) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return 0, nil
}

// collectAll walks every page by feeding NextCursor back in.
func collectAll(ctx context.Context, p *cursor.Paginator[*testVideo], first int) ([]*testVideo, int) {
	var (
		all   []*testVideo
		after *string
		pages int
	)
	for {
		page, err := p.Paginate(ctx, &paging.PageArgs{First: &first, After: after})
		Expect(err).ToNot(HaveOccurred())
		pages++
		all = append(all, page.Items...)
		if page.NextCursor == nil {
			Expect(page.HasNextPage).To(BeFalse())
			return all, pages
		}
		Expect(page.HasNextPage).To(BeTrue())
		after = page.NextCursor
		Expect(pages).To(BeNumerically("<", 1000), "pagination did not terminate")
	}
}

var _ = Describe("Paginator", func() {
	var (
		ctx  context.Context
		base time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	})

	Describe("tie-break determinism", func() {
		var (
			videoA, videoB, videoC *testVideo
			paginator              *cursor.Paginator[*testVideo]
		)

		BeforeEach(func() {
			videoA = &testVideo{ID: "00000000-0000-4000-8000-00000000000a", UpdatedAt: base}
			videoB = &testVideo{ID: "00000000-0000-4000-8000-00000000000b", UpdatedAt: base}
			videoC = &testVideo{ID: "00000000-0000-4000-8000-00000000000c", UpdatedAt: base}

			fetcher := cursor.NewSliceFetcher(videoKey, videoB, videoA, videoC)
			paginator = cursor.New[*testVideo](fetcher, videoKeyset, videoKey)
		})

		It("orders rows sharing a timestamp by descending id across pages", func() {
			page, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2)})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids(page.Items)).To(Equal([]string{videoC.ID, videoB.ID}))
			Expect(page.HasNextPage).To(BeTrue())
			Expect(page.NextCursor).ToNot(BeNil())

			next, err := cursor.Decode(*page.NextCursor)
			Expect(err).ToNot(HaveOccurred())
			Expect(next.TieBreakID).To(Equal(videoB.ID))
			Expect(next.SortValue.Equal(base)).To(BeTrue())

			page, err = paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2), After: page.NextCursor})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids(page.Items)).To(Equal([]string{videoA.ID}))
			Expect(page.NextCursor).To(BeNil())
			Expect(page.HasNextPage).To(BeFalse())
		})
	})

	Describe("seven comments with increasing timestamps", func() {
		var (
			items     []*testVideo
			paginator *cursor.Paginator[*testVideo]
		)

		BeforeEach(func() {
			items = make([]*testVideo, 7)
			for i := range items {
				items[i] = &testVideo{ID: uuid.NewString(), UpdatedAt: base.Add(time.Duration(i) * time.Minute)}
			}
			fetcher := cursor.NewSliceFetcher(videoKey, items...)
			paginator = cursor.New[*testVideo](fetcher, videoKeyset, videoKey, cursor.WithTotalCount())
		})

		It("returns the five newest, then the remaining two on a terminal page", func() {
			page, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(5)})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids(page.Items)).To(Equal([]string{items[6].ID, items[5].ID, items[4].ID, items[3].ID, items[2].ID}))
			Expect(*page.NextCursor).To(Equal(cursor.Encode(videoKey(items[2]))))
			Expect(*page.TotalCount).To(Equal(int64(7)))

			page, err = paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(5), After: page.NextCursor})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids(page.Items)).To(Equal([]string{items[1].ID, items[0].ID}))
			Expect(page.NextCursor).To(BeNil())
			Expect(*page.TotalCount).To(Equal(int64(7)))
		})

		It("reports examined rows including the lookahead", func() {
			page, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(5)})
			Expect(err).ToNot(HaveOccurred())
			Expect(page.Metadata.ItemsExamined).To(Equal(6))
			Expect(page.Metadata.Limit).To(Equal(5))
		})
	})

	Describe("no duplicates and no gaps", func() {
		It("visits every row exactly once in (sort DESC, id DESC) order", func() {
			r := rand.New(rand.NewSource(42))
			rows := make([]*testVideo, 137)
			for i := range rows {
				// Few distinct timestamps so most rows tie.
				rows[i] = &testVideo{
					ID:        uuid.NewString(),
					UpdatedAt: base.Add(time.Duration(r.Intn(9)) * time.Second),
				}
			}

			expected := slices.Clone(rows)
			slices.SortFunc(expected, func(a, b *testVideo) int {
				return cursor.Compare(videoKey(b), videoKey(a))
			})

			fetcher := cursor.NewSliceFetcher(videoKey, rows...)
			paginator := cursor.New[*testVideo](fetcher, videoKeyset, videoKey)

			for _, first := range []int{1, 2, 3, 7, 50} {
				all, pages := collectAll(ctx, paginator, first)
				Expect(ids(all)).To(Equal(ids(expected)), fmt.Sprintf("page size %d", first))
				Expect(pages).To(Equal((len(rows) + first - 1) / first))
			}
		})

		It("never repeats the cursor row on the following page", func() {
			rows := []*testVideo{
				{ID: "00000000-0000-4000-8000-000000000001", UpdatedAt: base},
				{ID: "00000000-0000-4000-8000-000000000002", UpdatedAt: base},
				{ID: "00000000-0000-4000-8000-000000000003", UpdatedAt: base.Add(-time.Second)},
				{ID: "00000000-0000-4000-8000-000000000004", UpdatedAt: base.Add(time.Second)},
			}
			paginator := cursor.New[*testVideo](cursor.NewSliceFetcher(videoKey, rows...), videoKeyset, videoKey)

			first, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2)})
			Expect(err).ToNot(HaveOccurred())
			boundary, err := cursor.Decode(*first.NextCursor)
			Expect(err).ToNot(HaveOccurred())

			second, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2), After: first.NextCursor})
			Expect(err).ToNot(HaveOccurred())
			Expect(second.Items).ToNot(BeEmpty())
			Expect(cursor.Before(videoKey(second.Items[0]), *boundary)).To(BeTrue())
		})
	})

	Describe("terminal pages", func() {
		var (
			rows      []*testVideo
			paginator *cursor.Paginator[*testVideo]
		)

		BeforeEach(func() {
			rows = []*testVideo{
				{ID: uuid.NewString(), UpdatedAt: base},
				{ID: uuid.NewString(), UpdatedAt: base.Add(time.Hour)},
			}
			paginator = cursor.New[*testVideo](cursor.NewSliceFetcher(videoKey, rows...), videoKeyset, videoKey)
		})

		It("returns an empty terminal page for a cursor at the last row", func() {
			after := cursor.Encode(videoKey(rows[0]))
			page, err := paginator.Paginate(ctx, &paging.PageArgs{After: &after})
			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.Items).ToNot(BeNil())
			Expect(page.NextCursor).To(BeNil())
		})

		It("returns an empty terminal page for a cursor past the last row", func() {
			after := cursor.Encode(paging.CursorPosition{SortValue: base.Add(-24 * time.Hour), TieBreakID: uuid.NewString()})
			page, err := paginator.Paginate(ctx, &paging.PageArgs{After: &after})
			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.NextCursor).To(BeNil())
		})

		It("returns a terminal page when exactly limit rows remain", func() {
			page, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2)})
			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.NextCursor).To(BeNil())
			Expect(page.HasNextPage).To(BeFalse())
		})

		It("returns an empty terminal page for an empty table", func() {
			empty := cursor.New[*testVideo](cursor.NewSliceFetcher(videoKey), videoKeyset, videoKey, cursor.WithTotalCount())
			page, err := empty.Paginate(ctx, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.NextCursor).To(BeNil())
			Expect(*page.TotalCount).To(BeZero())
		})
	})

	Describe("limit clamping", func() {
		var paginator *cursor.Paginator[*testVideo]

		BeforeEach(func() {
			rows := make([]*testVideo, 60)
			for i := range rows {
				rows[i] = &testVideo{ID: uuid.NewString(), UpdatedAt: base.Add(time.Duration(i) * time.Second)}
			}
			paginator = cursor.New[*testVideo](cursor.NewSliceFetcher(videoKey, rows...), videoKeyset, videoKey)
		})

		DescribeTable("pages hold min(max(1, requested), 50) rows",
			func(first *int, expected int) {
				page, err := paginator.Paginate(ctx, &paging.PageArgs{First: first})
				Expect(err).ToNot(HaveOccurred())
				Expect(page.Items).To(HaveLen(expected))
			},
			Entry("default", nil, 5),
			Entry("zero", intPtr(0), 1),
			Entry("negative", intPtr(-3), 1),
			Entry("in range", intPtr(12), 12),
			Entry("above maximum", intPtr(1000), 50),
		)

		It("honours a per-entity default", func() {
			custom := cursor.New[*testVideo](
				cursor.NewSliceFetcher(videoKey, &testVideo{ID: uuid.NewString(), UpdatedAt: base}),
				videoKeyset, videoKey,
				cursor.WithPageConfig(paging.NewPageConfig().WithDefaultSize(10)),
			)
			params, err := custom.BuildFetchParams(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(params.Limit).To(Equal(11))
			Expect(params.Cursor).To(BeNil())
			Expect(params.Keyset).To(Equal(videoKeyset))
		})
	})

	Describe("errors", func() {
		It("rejects a malformed cursor before touching the store", func() {
			fetcher := &failingFetcher{}
			paginator := cursor.New[*testVideo](fetcher, videoKeyset, videoKey)

			bad := "not-a-cursor"
			page, err := paginator.Paginate(ctx, &paging.PageArgs{After: &bad})
			Expect(page).To(BeNil())
			Expect(err).To(MatchError(paging.ErrMalformedCursor))
			Expect(fetcher.fetches).To(BeZero())
		})

		It("treats an empty cursor as the first page", func() {
			fetcher := &failingFetcher{}
			paginator := cursor.New[*testVideo](fetcher, videoKeyset, videoKey)

			empty := ""
			_, err := paginator.Paginate(ctx, &paging.PageArgs{After: &empty})
			Expect(err).ToNot(HaveOccurred())
		})

		It("surfaces store failures instead of an empty page", func() {
			fetcher := &failingFetcher{fetchErr: paging.NewStoreError("fetch videos", errors.New("connection refused"))}
			paginator := cursor.New[*testVideo](fetcher, videoKeyset, videoKey)

			page, err := paginator.Paginate(ctx, nil)
			Expect(page).To(BeNil())
			Expect(err).To(MatchError(paging.ErrDataStoreUnavailable))
		})

		It("surfaces count failures", func() {
			fetcher := &failingFetcher{countErr: paging.NewStoreError("count videos", errors.New("connection reset"))}
			paginator := cursor.New[*testVideo](fetcher, videoKeyset, videoKey, cursor.WithTotalCount())

			page, err := paginator.Paginate(ctx, nil)
			Expect(page).To(BeNil())
			Expect(err).To(MatchError(paging.ErrDataStoreUnavailable))
		})

		It("returns no partial page when cancelled", func() {
			rows := []*testVideo{{ID: uuid.NewString(), UpdatedAt: base}}
			paginator := cursor.New[*testVideo](cursor.NewSliceFetcher(videoKey, rows...), videoKeyset, videoKey)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			page, err := paginator.Paginate(cancelled, nil)
			Expect(page).To(BeNil())
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(errors.Is(err, paging.ErrDataStoreUnavailable)).To(BeFalse())
		})
	})

	// Keyset pagination reflects the store at the time of each fetch; it is
	// not a snapshot of the whole scroll.
	Describe("concurrent writes between pages", func() {
		var (
			rows      []*testVideo
			fetcher   *cursor.SliceFetcher[*testVideo]
			paginator *cursor.Paginator[*testVideo]
		)

		BeforeEach(func() {
			rows = make([]*testVideo, 4)
			for i := range rows {
				rows[i] = &testVideo{ID: uuid.NewString(), UpdatedAt: base.Add(time.Duration(i) * time.Minute)}
			}
			fetcher = cursor.NewSliceFetcher(videoKey, rows...)
			paginator = cursor.New[*testVideo](fetcher, videoKeyset, videoKey)
		})

		It("does not show rows inserted ahead of the cursor", func() {
			page, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2)})
			Expect(err).ToNot(HaveOccurred())

			fresh := &testVideo{ID: uuid.NewString(), UpdatedAt: base.Add(time.Hour)}
			fetcher.Insert(fresh)

			page, err = paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2), After: page.NextCursor})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids(page.Items)).To(Equal([]string{rows[1].ID, rows[0].ID}))
		})

		It("shows rows inserted behind the cursor", func() {
			page, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2)})
			Expect(err).ToNot(HaveOccurred())

			old := &testVideo{ID: uuid.NewString(), UpdatedAt: base.Add(-time.Hour)}
			fetcher.Insert(old)

			page, err = paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(5), After: page.NextCursor})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids(page.Items)).To(Equal([]string{rows[1].ID, rows[0].ID, old.ID}))
		})

		It("still resumes correctly after the cursor row is deleted", func() {
			page, err := paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2)})
			Expect(err).ToNot(HaveOccurred())

			fetcher.Delete(func(v *testVideo) bool { return v.ID == rows[2].ID })

			page, err = paginator.Paginate(ctx, &paging.PageArgs{First: intPtr(2), After: page.NextCursor})
			Expect(err).ToNot(HaveOccurred())
			Expect(ids(page.Items)).To(Equal([]string{rows[1].ID, rows[0].ID}))
		})
	})
})

var _ = Describe("Assemble", func() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []*testVideo{
		{ID: "00000000-0000-4000-8000-000000000003", UpdatedAt: base.Add(2 * time.Second)},
		{ID: "00000000-0000-4000-8000-000000000002", UpdatedAt: base.Add(time.Second)},
		{ID: "00000000-0000-4000-8000-000000000001", UpdatedAt: base},
	}

	It("trims the lookahead row and points next at the last kept row", func() {
		items, next, hasNext := cursor.Assemble(rows, 2, videoKey)
		Expect(items).To(HaveLen(2))
		Expect(hasNext).To(BeTrue())
		Expect(next.TieBreakID).To(Equal(rows[1].ID))
	})

	It("is terminal when the batch fits", func() {
		items, next, hasNext := cursor.Assemble(rows, 3, videoKey)
		Expect(items).To(HaveLen(3))
		Expect(hasNext).To(BeFalse())
		Expect(next).To(BeNil())
	})

	It("returns a non-nil empty slice for an empty batch", func() {
		items, next, hasNext := cursor.Assemble[*testVideo](nil, 5, videoKey)
		Expect(items).ToNot(BeNil())
		Expect(items).To(BeEmpty())
		Expect(hasNext).To(BeFalse())
		Expect(next).To(BeNil())
	})
})
