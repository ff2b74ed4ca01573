package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/BruksfildServices01/recruit-scheduler/internal/config"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
)

const primaryCalendar = "primary"

var ErrNotConnected = errors.New("google calendar not connected")

// TokenStore persists one token per owner. GetToken returns nil, nil when
// the owner never connected.
type TokenStore interface {
	GetToken(ctx context.Context, ownerID uint) (*oauth2.Token, error)
	SaveToken(ctx context.Context, ownerID uint, tok *oauth2.Token) error
}

type Client struct {
	oauth  *oauth2.Config
	tokens TokenStore
	log    *zap.Logger
}

func NewClient(cfg *config.Config, tokens TokenStore, log *zap.Logger) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{gcalendar.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		tokens: tokens,
		log:    logger.OrNop(log),
	}
}

// ====================================================
// OAuth
// ====================================================

func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (c *Client) Exchange(ctx context.Context, ownerID uint, code string) error {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange google code: %w", err)
	}
	return c.tokens.SaveToken(ctx, ownerID, tok)
}

// ====================================================
// Free/busy
// ====================================================

// Busy returns the owner's busy periods on the primary calendar in
// [from, to), expressed in from's location.
func (c *Client) Busy(ctx context.Context, ownerID uint, from, to time.Time) ([]calendar.BusyBlock, error) {
	tok, err := c.tokens.GetToken(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrNotConnected
	}

	ts := c.oauth.TokenSource(ctx, tok)

	srv, err := gcalendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	resp, err := srv.Freebusy.Query(&gcalendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*gcalendar.FreeBusyRequestItem{{Id: primaryCalendar}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("query freebusy: %w", err)
	}

	c.keepRefreshed(ctx, ownerID, tok, ts)

	cal, ok := resp.Calendars[primaryCalendar]
	if !ok {
		return nil, nil
	}
	return toBusyBlocks(cal.Busy, from.Location()), nil
}

// keepRefreshed stores the token again when the source refreshed it. A
// failed write only costs another refresh next time.
func (c *Client) keepRefreshed(ctx context.Context, ownerID uint, old *oauth2.Token, ts oauth2.TokenSource) {
	fresh, err := ts.Token()
	if err != nil || fresh.AccessToken == old.AccessToken {
		return
	}
	if err := c.tokens.SaveToken(ctx, ownerID, fresh); err != nil {
		c.log.Warn("refreshed google token not saved",
			zap.Uint("owner_id", ownerID),
			zap.Error(err),
		)
	}
}

func toBusyBlocks(periods []*gcalendar.TimePeriod, loc *time.Location) []calendar.BusyBlock {
	out := make([]calendar.BusyBlock, 0, len(periods))
	for _, p := range periods {
		if p == nil {
			continue
		}
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil || !end.After(start) {
			continue
		}
		out = append(out, calendar.BusyBlock{
			Start: start.In(loc),
			End:   end.In(loc),
		})
	}
	return out
}
