package listing

import (
	"fmt"

	paging "github.com/nrfta/videohub"
)

// EntityType names a listing.
type EntityType string

const (
	EntityComments     EntityType = "comments"
	EntityReplies      EntityType = "replies"
	EntityStudioVideos EntityType = "studio_videos"
	EntitySearch       EntityType = "search"
	EntitySuggestions  EntityType = "suggestions"
)

// ParseEntityType returns the EntityType named s.
func ParseEntityType(s string) (EntityType, error) {
	switch e := EntityType(s); e {
	case EntityComments, EntityReplies, EntityStudioVideos, EntitySearch, EntitySuggestions:
		return e, nil
	}
	return "", fmt.Errorf("%w: unknown entity type %q", paging.ErrInvalidArgument, s)
}

// CommentsFilter selects the comments of one video. An empty ParentID lists
// top-level comments, otherwise the replies to ParentID.
type CommentsFilter struct {
	VideoID  string `json:"videoId" validate:"required,uuid"`
	ParentID string `json:"parentId" validate:"omitempty,uuid"`
	// ViewerID is the requesting user, whose own reaction is reported.
	ViewerID string `json:"viewerId" validate:"omitempty,uuid"`
}

// StudioFilter selects the videos owned by the requesting user.
type StudioFilter struct {
	OwnerID string `json:"ownerId" validate:"required,uuid"`
}

// SearchFilter matches video titles, optionally within one category.
type SearchFilter struct {
	Query      string `json:"query" validate:"max=200"`
	CategoryID string `json:"categoryId" validate:"omitempty,uuid"`
}

// SuggestionsFilter names the video suggestions are related to.
type SuggestionsFilter struct {
	VideoID string `json:"videoId" validate:"required,uuid"`
}

// Filter carries the filter fields of every listing for ListPage. Each
// entity reads only the fields it uses.
type Filter struct {
	VideoID    string
	ParentID   string
	ViewerID   string
	OwnerID    string
	Query      string
	CategoryID string
}
