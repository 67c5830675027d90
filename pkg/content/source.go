package content

import (
	"context"
	"fmt"
	"time"

	"github.com/matst80/center-finder/pkg/types"
	"golang.org/x/sync/errgroup"
)

type Source interface {
	Snapshot(ctx context.Context) (*types.Snapshot, error)
}

type CMSSource struct {
	Client *Client
	now    func() time.Time
}

func NewCMSSource(client *Client) *CMSSource {
	return &CMSSource{Client: client, now: time.Now}
}

// Invalidate drops cached responses so the next snapshot reads fresh content.
func (s *CMSSource) Invalidate(ctx context.Context) error {
	if s.Client.Cache == nil {
		return nil
	}
	return s.Client.Cache.Flush(ctx)
}

// Snapshot loads every collection concurrently. The snapshot is only
// returned when all fetches succeed.
func (s *CMSSource) Snapshot(ctx context.Context) (*types.Snapshot, error) {
	snapshot := &types.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := s.Client.Query(gctx, ProgramsQuery, nil)
		if err != nil {
			return fmt.Errorf("programs: %w", err)
		}
		snapshot.Programs = mapNodes(data.Get("programs"), MapProgram)
		return nil
	})
	g.Go(func() error {
		data, err := s.Client.Query(gctx, CentersQuery, nil)
		if err != nil {
			return fmt.Errorf("centers: %w", err)
		}
		snapshot.Centers = mapNodes(data.Get("centers"), MapCenter)
		return nil
	})
	g.Go(func() error {
		data, err := s.Client.Query(gctx, MembershipsQuery, nil)
		if err != nil {
			return fmt.Errorf("memberships: %w", err)
		}
		snapshot.Memberships = mapNodes(data.Get("memberships"), MapMembership)
		snapshot.Audiences = mapTags(data.Get("audiences"))
		snapshot.ProgramAreas = mapTags(data.Get("programAreas"))
		return nil
	})
	g.Go(func() error {
		data, err := s.Client.Query(gctx, EventsQuery, nil)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		snapshot.Events = mapNodes(data.Get("events"), MapEvent)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snapshot.LoadedAt = s.now()
	return snapshot, nil
}
