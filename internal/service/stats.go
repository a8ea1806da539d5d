package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"pagecraft/internal/models"
)

const (
	// ChartDays is the number of daily buckets in the admin charts.
	ChartDays = 7
	// TopAuthorsLimit caps the top-authors ranking.
	TopAuthorsLimit = 5
	// UnknownAuthor names ranking entries whose account no longer exists.
	UnknownAuthor = "Unknown"

	dayLayout = "2006-01-02"
)

// Stats computes dashboard rollups. Independent counts run concurrently and
// are not taken from a single snapshot.
type Stats struct {
	users   UserStore
	content ContentStore
	now     func() time.Time
}

// NewStats creates a Stats service.
func NewStats(users UserStore, content ContentStore) *Stats {
	return &Stats{users: users, content: content, now: time.Now}
}

// StatusBreakdown is content counts keyed by status.
type StatusBreakdown struct {
	Draft     int `json:"Draft"`
	Published int `json:"Published"`
}

// ContentSummary is the content part of the dashboard stats.
type ContentSummary struct {
	Total    int             `json:"total"`
	ByStatus StatusBreakdown `json:"byStatus"`
}

// DashboardStats is returned by the role-aware dashboard endpoint. Users is
// only set for the platform scope.
type DashboardStats struct {
	Scope   string         `json:"scope"`
	Users   *int           `json:"users,omitempty"`
	Content ContentSummary `json:"content"`
}

// Dashboard scopes.
const (
	ScopePlatform = "platform"
	ScopeSelf     = "self"
)

// AdminStats is returned by the admin analytics endpoint.
type AdminStats struct {
	TotalUsers       int                  `json:"totalUsers"`
	TotalContent     int                  `json:"totalContent"`
	PublishedCount   int                  `json:"publishedCount"`
	DraftCount       int                  `json:"draftCount"`
	NewUsersThisWeek int                  `json:"newUsersThisWeek"`
	SignupChart      []models.DayCount    `json:"signupChart"`
	ContentChart     []models.DayCount    `json:"contentChart"`
	TopAuthors       []models.AuthorCount `json:"topAuthors"`
}

func summarize(c models.StatusCounts) ContentSummary {
	return ContentSummary{
		Total:    c.Total,
		ByStatus: StatusBreakdown{Draft: c.Draft, Published: c.Published},
	}
}

// Dashboard returns platform-wide counts for admins and counts of the
// caller's own content for everyone else.
func (s *Stats) Dashboard(ctx context.Context, caller *models.User) (*DashboardStats, error) {
	if caller == nil {
		return nil, newError(KindUnauthenticated, MsgNoToken)
	}

	if !caller.IsAdmin() {
		counts, err := s.content.CountByStatus(ctx, &caller.ID)
		if err != nil {
			return nil, err
		}
		return &DashboardStats{Scope: ScopeSelf, Content: summarize(counts)}, nil
	}

	var (
		users  int
		counts models.StatusCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.content.CountByStatus(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DashboardStats{Scope: ScopePlatform, Users: &users, Content: summarize(counts)}, nil
}

// Admin returns platform totals, trailing-week activity charts and the top
// authors ranking.
func (s *Stats) Admin(ctx context.Context) (*AdminStats, error) {
	now := s.now().UTC()
	weekAgo := now.Add(-ChartDays * 24 * time.Hour)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	chartStart := today.AddDate(0, 0, -(ChartDays - 1))

	var (
		out      AdminStats
		counts   models.StatusCounts
		signups  []models.DayCount
		created  []models.DayCount
		rankings []models.AuthorCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.TotalUsers, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.content.CountByStatus(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		out.NewUsersThisWeek, err = s.users.CountSince(gctx, weekAgo)
		return err
	})
	g.Go(func() error {
		var err error
		signups, err = s.users.SignupsByDay(gctx, chartStart)
		return err
	})
	g.Go(func() error {
		var err error
		created, err = s.content.CreatedByDay(gctx, chartStart)
		return err
	})
	g.Go(func() error {
		var err error
		rankings, err = s.content.TopAuthors(gctx, TopAuthorsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.TotalContent = counts.Total
	out.PublishedCount = counts.Published
	out.DraftCount = counts.Draft
	out.SignupChart = fillDays(chartStart, signups)
	out.ContentChart = fillDays(chartStart, created)
	out.TopAuthors = nameAuthors(rankings)
	return &out, nil
}

// fillDays expands sparse per-day counts into ChartDays contiguous buckets
// starting at start, oldest first, with zero for missing days.
func fillDays(start time.Time, sparse []models.DayCount) []models.DayCount {
	byDate := make(map[string]int, len(sparse))
	for _, d := range sparse {
		byDate[d.Date] += d.Count
	}

	out := make([]models.DayCount, ChartDays)
	for i := range out {
		date := start.AddDate(0, 0, i).Format(dayLayout)
		out[i] = models.DayCount{Date: date, Count: byDate[date]}
	}
	return out
}

func nameAuthors(in []models.AuthorCount) []models.AuthorCount {
	if len(in) > TopAuthorsLimit {
		in = in[:TopAuthorsLimit]
	}
	out := make([]models.AuthorCount, len(in))
	for i, a := range in {
		if a.Username == "" {
			a.Username = UnknownAuthor
		}
		out[i] = a
	}
	return out
}
