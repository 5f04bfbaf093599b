// Package listing serves the keyset-paginated listings of the video service:
// comments and their replies, a creator's studio videos, search results and
// related-video suggestions. Every listing is the same paginator
// instantiated with an entity filter, sort key and projection.
package listing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/countcache"
	"github.com/nrfta/videohub/cursor"
	"github.com/nrfta/videohub/models"
	"github.com/nrfta/videohub/validation"
)

// StudioDefaultPageSize is the studio table's page size when none is requested.
const StudioDefaultPageSize = 10

// Service runs listings against a Store.
type Service struct {
	store    Store
	counts   countcache.Cache
	log      zerolog.Logger
	metrics  *Metrics
	validate *validation.Validator
}

// Option configures a Service.
type Option func(*Service)

// WithCountCache serves totals from c.
func WithCountCache(c countcache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.counts = c
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithMetrics records every page request in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService returns a Service over store. Without options totals are not
// cached, nothing is logged and no metrics are recorded.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		counts:   countcache.Noop{},
		log:      zerolog.Nop(),
		validate: validation.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// listing is one instantiation of the paginator.
type listing[T any] struct {
	entity  EntityType
	fetcher paging.Fetcher[T]
	keyset  paging.Keyset
	key     cursor.KeyFunc[T]
	config  *paging.PageConfig

	// countKey enables TotalCount; empty for listings without one.
	countKey string
}

func run[T any](ctx context.Context, s *Service, l listing[T], args *paging.PageArgs) (*paging.Page[T], error) {
	start := time.Now()

	fetcher := l.fetcher
	opts := []cursor.Option{cursor.WithPageConfig(l.config)}
	if l.countKey != "" {
		fetcher = &cachedCount[T]{Fetcher: fetcher, cache: s.counts, key: l.countKey}
		opts = append(opts, cursor.WithTotalCount())
	}

	page, err := cursor.New[T](fetcher, l.keyset, l.key, opts...).Paginate(ctx, args)

	items := 0
	if page != nil {
		items = len(page.Items)
	}
	s.metrics.observe(l.entity, start, items, err)

	if err != nil {
		s.log.Warn().
			Err(err).
			Str("entity", string(l.entity)).
			Str("outcome", Outcome(err)).
			Dur("elapsed", time.Since(start)).
			Msg("list page failed")
		return nil, err
	}

	s.log.Debug().
		Str("entity", string(l.entity)).
		Int("items", items).
		Int("limit", page.Metadata.Limit).
		Int("examined", page.Metadata.ItemsExamined).
		Bool("has_next", page.HasNextPage).
		Int64("query_ms", page.Metadata.QueryTimeMs).
		Msg("list page")
	return page, nil
}

// cachedCount serves Count through the count cache.
type cachedCount[T any] struct {
	paging.Fetcher[T]
	cache countcache.Cache
	key   string
}

func (c *cachedCount[T]) Count(ctx context.Context, params paging.FetchParams) (int64, error) {
	return countcache.GetOrLoad(ctx, c.cache, c.key, func(ctx context.Context) (int64, error) {
		return c.Fetcher.Count(ctx, params)
	})
}

// Comments lists the top-level comments of a video, or the replies to
// f.ParentID when it is set, newest first with a total.
func (s *Service) Comments(ctx context.Context, f CommentsFilter, args *paging.PageArgs) (*paging.Page[*models.CommentRow], error) {
	if err := s.validate.Struct(&f); err != nil {
		return nil, err
	}

	entity := EntityComments
	if f.ParentID != "" {
		entity = EntityReplies
	}

	return run(ctx, s, listing[*models.CommentRow]{
		entity:   entity,
		fetcher:  s.store.Comments(f),
		keyset:   models.CommentKeyset,
		key:      models.CommentRowKey,
		config:   paging.NewPageConfig(),
		countKey: countcache.CommentsKey(f.VideoID, f.ParentID),
	}, args)
}

// Replies lists the replies to parentID.
func (s *Service) Replies(ctx context.Context, f CommentsFilter, args *paging.PageArgs) (*paging.Page[*models.CommentRow], error) {
	if f.ParentID == "" {
		return nil, validation.Field("parentId", "The field 'parentId' is required.")
	}
	return s.Comments(ctx, f, args)
}

// StudioVideos lists the videos owned by f.OwnerID, most recently updated first.
func (s *Service) StudioVideos(ctx context.Context, f StudioFilter, args *paging.PageArgs) (*paging.Page[*models.Video], error) {
	if err := s.validate.Struct(&f); err != nil {
		return nil, err
	}

	return run(ctx, s, listing[*models.Video]{
		entity:  EntityStudioVideos,
		fetcher: s.store.StudioVideos(f),
		keyset:  models.VideoKeyset,
		key:     models.VideoKey,
		config:  paging.NewPageConfig().WithDefaultSize(StudioDefaultPageSize),
	}, args)
}

// Search lists the videos whose title contains f.Query, optionally within
// f.CategoryID, most recently updated first.
func (s *Service) Search(ctx context.Context, f SearchFilter, args *paging.PageArgs) (*paging.Page[*models.VideoRow], error) {
	if err := s.validate.Struct(&f); err != nil {
		return nil, err
	}

	return run(ctx, s, listing[*models.VideoRow]{
		entity:  EntitySearch,
		fetcher: s.store.Search(f),
		keyset:  models.VideoKeyset,
		key:     models.VideoRowKey,
		config:  paging.NewPageConfig(),
	}, args)
}

// Suggestions lists videos related to f.VideoID: those in the same category
// when the video has one, otherwise all videos, never the video itself.
// An unknown video fails with paging.ErrNotFound before any page is read.
func (s *Service) Suggestions(ctx context.Context, f SuggestionsFilter, args *paging.PageArgs) (*paging.Page[*models.VideoRow], error) {
	if err := s.validate.Struct(&f); err != nil {
		return nil, err
	}

	seed, err := s.store.FindVideo(ctx, f.VideoID)
	if err != nil {
		s.metrics.observe(EntitySuggestions, time.Now(), 0, err)
		return nil, err
	}

	return run(ctx, s, listing[*models.VideoRow]{
		entity:  EntitySuggestions,
		fetcher: s.store.Suggestions(seed),
		keyset:  models.VideoKeyset,
		key:     models.VideoRowKey,
		config:  paging.NewPageConfig(),
	}, args)
}

// ListPage dispatches to the listing named by entity.
func (s *Service) ListPage(ctx context.Context, entity EntityType, f Filter, args *paging.PageArgs) (*paging.Page[any], error) {
	switch entity {
	case EntityComments:
		return erase(s.Comments(ctx, CommentsFilter{VideoID: f.VideoID, ViewerID: f.ViewerID}, args))
	case EntityReplies:
		return erase(s.Replies(ctx, CommentsFilter{VideoID: f.VideoID, ParentID: f.ParentID, ViewerID: f.ViewerID}, args))
	case EntityStudioVideos:
		return erase(s.StudioVideos(ctx, StudioFilter{OwnerID: f.OwnerID}, args))
	case EntitySearch:
		return erase(s.Search(ctx, SearchFilter{Query: f.Query, CategoryID: f.CategoryID}, args))
	case EntitySuggestions:
		return erase(s.Suggestions(ctx, SuggestionsFilter{VideoID: f.VideoID}, args))
	}
	_, err := ParseEntityType(string(entity))
	return nil, err
}

func erase[T any](page *paging.Page[T], err error) (*paging.Page[any], error) {
	if err != nil {
		return nil, err
	}

	items := make([]any, len(page.Items))
	for i, item := range page.Items {
		items[i] = item
	}
	return &paging.Page[any]{
		Items:       items,
		NextCursor:  page.NextCursor,
		HasNextPage: page.HasNextPage,
		TotalCount:  page.TotalCount,
		Metadata:    page.Metadata,
	}, nil
}
