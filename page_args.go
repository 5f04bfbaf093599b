package paging

import "fmt"

const (
	// DefaultPageSize is the number of items per page when the caller does not ask for one.
	DefaultPageSize = 5

	// MaxPageSize is the largest page any listing returns.
	MaxPageSize = 50
)

// PageArgs represents pagination query parameters.
// First is the page size and After the opaque cursor returned by the
// previous page.
type PageArgs struct {
	First *int    `json:"first,omitempty"`
	After *string `json:"after,omitempty"`
}

// NewPageArgs builds PageArgs from optional raw values. An empty cursor is
// treated as absent.
func NewPageArgs(first *int, after string) *PageArgs {
	args := &PageArgs{First: first}
	if after != "" {
		args.After = &after
	}
	return args
}

// GetFirst returns the requested page size.
func (pa *PageArgs) GetFirst() *int {
	if pa == nil {
		return nil
	}
	return pa.First
}

// GetAfter returns the cursor position for pagination.
func (pa *PageArgs) GetAfter() *string {
	if pa == nil {
		return nil
	}
	return pa.After
}

// PageConfig holds pagination configuration options.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := paging.NewPageConfig().WithDefaultSize(10)
//	limit := config.EffectiveLimit(args)
type PageConfig struct {
	// DefaultSize is the page size used when not specified in PageArgs.
	DefaultSize int

	// MaxSize is the maximum allowed page size. Requests exceeding this
	// will be capped to MaxSize (not rejected).
	MaxSize int
}

// NewPageConfig creates a PageConfig with the defaults shared by every
// listing: DefaultSize 5 and MaxSize 50.
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize: DefaultPageSize,
		MaxSize:     MaxPageSize,
	}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size > 0 {
		c.DefaultSize = size
	}
	return c
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
// Values above MaxPageSize are capped.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = min(size, MaxPageSize)
	}
	return c
}

func (c *PageConfig) bounds() (defaultSize, maxSize int) {
	if c == nil {
		c = NewPageConfig()
	}

	maxSize = c.MaxSize
	if maxSize <= 0 || maxSize > MaxPageSize {
		maxSize = MaxPageSize
	}

	defaultSize = c.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	return min(defaultSize, maxSize), maxSize
}

// EffectiveLimit returns the page size to use, applying defaults and clamps.
//   - If args is nil or First is nil, returns DefaultSize
//   - Otherwise returns First clamped to [1, MaxSize]
func (c *PageConfig) EffectiveLimit(args *PageArgs) int {
	defaultSize, maxSize := c.bounds()

	first := args.GetFirst()
	if first == nil {
		return defaultSize
	}

	return min(max(1, *first), maxSize)
}

// Validate checks the page size against [1, MaxSize] and returns a
// *PageSizeError if it falls outside. Unlike EffectiveLimit which clamps
// silently, Validate is for endpoints that prefer explicit rejection.
func (c *PageConfig) Validate(args *PageArgs) error {
	_, maxSize := c.bounds()

	first := args.GetFirst()
	if first == nil {
		return nil
	}

	if *first < 1 || *first > maxSize {
		return &PageSizeError{
			Requested: *first,
			Maximum:   maxSize,
		}
	}

	return nil
}

// ValidateWith validates the PageArgs using a custom PageConfig.
func (pa *PageArgs) ValidateWith(config *PageConfig) error {
	return config.Validate(pa)
}

// PageSizeError is returned when the requested page size is outside the allowed range.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested page size %d is outside the allowed range 1..%d",
		e.Requested, e.Maximum)
}

// Is makes PageSizeError match ErrInvalidLimit.
func (e *PageSizeError) Is(target error) bool {
	return target == ErrInvalidLimit
}
