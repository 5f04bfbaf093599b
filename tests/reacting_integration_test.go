package paging_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/listing"
	"github.com/nrfta/videohub/models"
	"github.com/nrfta/videohub/reacting"
)

var _ = Describe("Reacting against PostgreSQL", func() {
	var (
		writer   *reacting.Service
		listings *listing.Service
		viewer   *models.User
		video    *models.Video
		comment  *models.Comment
	)

	BeforeEach(func() {
		writer = reacting.NewService(container.DB, zerolog.New(GinkgoWriter))
		listings = listing.NewService(listing.NewSQLStore(container.DB))

		owner, err := SeedUser(ctx, container.DB, "owner")
		Expect(err).ToNot(HaveOccurred())
		viewer, err = SeedUser(ctx, container.DB, "viewer")
		Expect(err).ToNot(HaveOccurred())
		videos, err := SeedVideos(ctx, container.DB, owner.ID, 1, "Reactable", "")
		Expect(err).ToNot(HaveOccurred())
		video = videos[0]
		comments, err := SeedComments(ctx, container.DB, owner.ID, video.ID, "", 1)
		Expect(err).ToNot(HaveOccurred())
		comment = comments[0]
	})

	searched := func() *models.VideoRow {
		page, err := listings.Search(ctx, listing.SearchFilter{Query: "Reactable"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(page.Items).To(HaveLen(1))
		return page.Items[0]
	}

	commentRow := func() *models.CommentRow {
		page, err := listings.Comments(ctx, listing.CommentsFilter{VideoID: video.ID, ViewerID: viewer.ID}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(page.Items).To(HaveLen(1))
		return page.Items[0]
	}

	It("removes a video like when it is repeated", func() {
		in := reacting.VideoInput{UserID: viewer.ID, VideoID: video.ID}

		liked, err := writer.LikeVideo(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		Expect(liked.Type.String).To(Equal(models.ReactionLike))
		Expect(searched().LikeCount).To(Equal(int64(1)))

		cleared, err := writer.LikeVideo(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		Expect(cleared.Type.Valid).To(BeFalse())
		Expect(searched().LikeCount).To(BeZero())
	})

	It("switches a video like to a dislike", func() {
		in := reacting.VideoInput{UserID: viewer.ID, VideoID: video.ID}

		_, err := writer.LikeVideo(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		disliked, err := writer.DislikeVideo(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		Expect(disliked.Type.String).To(Equal(models.ReactionDislike))

		row := searched()
		Expect(row.LikeCount).To(BeZero())
		Expect(row.DislikeCount).To(Equal(int64(1)))
	})

	It("reports the viewer's comment reaction", func() {
		in := reacting.CommentInput{UserID: viewer.ID, CommentID: comment.ID}

		_, err := writer.DislikeComment(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		row := commentRow()
		Expect(row.DislikeCount).To(Equal(int64(1)))
		Expect(row.ViewerReaction.String).To(Equal(models.ReactionDislike))

		_, err = writer.LikeComment(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		row = commentRow()
		Expect(row.LikeCount).To(Equal(int64(1)))
		Expect(row.DislikeCount).To(BeZero())
		Expect(row.ViewerReaction.String).To(Equal(models.ReactionLike))

		_, err = writer.LikeComment(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		Expect(commentRow().ViewerReaction.Valid).To(BeFalse())
	})

	It("counts a user's view once", func() {
		in := reacting.VideoInput{UserID: viewer.ID, VideoID: video.ID}

		_, err := writer.RecordView(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		_, err = writer.RecordView(ctx, in)
		Expect(err).ToNot(HaveOccurred())

		Expect(searched().ViewCount).To(Equal(int64(1)))
	})

	It("accepts upper-case ids", func() {
		_, err := writer.LikeVideo(ctx, reacting.VideoInput{
			UserID:  strings.ToUpper(viewer.ID),
			VideoID: strings.ToUpper(video.ID),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(searched().LikeCount).To(Equal(int64(1)))
	})

	It("reports unknown targets as not found", func() {
		missing := "00000000-0000-4000-8000-000000000000"

		_, err := writer.LikeVideo(ctx, reacting.VideoInput{UserID: viewer.ID, VideoID: missing})
		Expect(err).To(MatchError(paging.ErrNotFound))

		_, err = writer.DislikeComment(ctx, reacting.CommentInput{UserID: viewer.ID, CommentID: missing})
		Expect(err).To(MatchError(paging.ErrNotFound))

		_, err = writer.RecordView(ctx, reacting.VideoInput{UserID: viewer.ID, VideoID: missing})
		Expect(err).To(MatchError(paging.ErrNotFound))
	})
})
