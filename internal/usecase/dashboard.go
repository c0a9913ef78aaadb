package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/sync/errgroup"

	"recon-insights/internal/domain"
	"recon-insights/internal/engine"
	"recon-insights/internal/export"
)

// ErrInvalidRequest is wrapped by every request validation failure.
var ErrInvalidRequest = errors.New("invalid dashboard request")

// DashboardUseCase fetches raw snapshots and turns them into dashboard views.
type DashboardUseCase struct {
	source  SnapshotSource
	builder *engine.Builder
}

// NewDashboardUseCase creates a new instance of the usecase.
func NewDashboardUseCase(source SnapshotSource) *DashboardUseCase {
	return &DashboardUseCase{
		source:  source,
		builder: engine.NewBuilder(engine.NewColorAssigner(0)),
	}
}

// BuildDashboard fetches every requested platform, merges the snapshots in
// request order and computes the views. Ageing and growth come from the
// primary platform only.
func (uc *DashboardUseCase) BuildDashboard(ctx context.Context, req domain.DashboardRequest) (*domain.DashboardView, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	queries := req.Queries()
	primary := queries[0]

	var (
		rawSnapshots = make([]json.RawMessage, len(queries))
		rawAgeing    json.RawMessage
		rawGrowth    json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			raw, err := uc.source.GetSnapshot(gctx, q)
			if err != nil {
				return fmt.Errorf("could not get %s snapshot: %w", q.Platform, err)
			}
			rawSnapshots[i] = raw
			return nil
		})
	}
	g.Go(func() error {
		raw, err := uc.source.GetAgeing(gctx, primary)
		if err != nil {
			return fmt.Errorf("could not get %s ageing: %w", primary.Platform, err)
		}
		rawAgeing = raw
		return nil
	})
	g.Go(func() error {
		raw, err := uc.source.GetGrowth(gctx, primary)
		if err != nil {
			return fmt.Errorf("could not get %s growth: %w", primary.Platform, err)
		}
		rawGrowth = raw
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshots := make([]domain.Snapshot, 0, len(rawSnapshots))
	for i, raw := range rawSnapshots {
		snap, warnings := engine.DecodeSnapshot(raw)
		logWarnings(string(queries[i].Platform)+" snapshot", warnings)
		snapshots = append(snapshots, snap)
	}

	view := uc.build(engine.MergeAll(snapshots), rawAgeing, rawGrowth, string(primary.Platform))
	return &view, nil
}

// BuildFromPayload computes the views of an already fetched payload. Nothing
// is fetched and malformed parts degrade to empty views.
func (uc *DashboardUseCase) BuildFromPayload(snapshot, ageing, growth json.RawMessage) domain.DashboardView {
	snap, warnings := engine.DecodeSnapshot(snapshot)
	logWarnings("payload snapshot", warnings)
	return uc.build(snap, ageing, growth, "payload")
}

// Export builds the dashboard for req and writes it to w as CSV.
func (uc *DashboardUseCase) Export(ctx context.Context, req domain.DashboardRequest, w io.Writer) error {
	view, err := uc.BuildDashboard(ctx, req)
	if err != nil {
		return err
	}
	if err := export.Write(w, export.Rows(*view, req.ExportContext())); err != nil {
		return fmt.Errorf("could not export dashboard: %w", err)
	}
	return nil
}

func (uc *DashboardUseCase) build(snap domain.Snapshot, rawAgeing, rawGrowth json.RawMessage, origin string) domain.DashboardView {
	var (
		ageing []domain.AgeingRecord
		growth domain.GrowthInput
	)
	// An absent payload means the upstream has no data for the window.
	if len(rawAgeing) > 0 {
		var warnings engine.Warnings
		ageing, warnings = engine.DecodeAgeing(rawAgeing)
		logWarnings(origin+" ageing", warnings)
	}
	if len(rawGrowth) > 0 {
		var warnings engine.Warnings
		growth, warnings = engine.DecodeGrowth(rawGrowth)
		logWarnings(origin+" growth", warnings)
	}
	return uc.builder.Build(snap, ageing, growth)
}

func validate(req domain.DashboardRequest) error {
	if len(req.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform is required", ErrInvalidRequest)
	}
	if req.DateField == "" {
		return fmt.Errorf("%w: date field is required", ErrInvalidRequest)
	}
	if !req.Start.IsZero() && !req.End.IsZero() && req.End.Before(req.Start) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidRequest, req.End.Format("2006-01-02"), req.Start.Format("2006-01-02"))
	}
	return nil
}

func logWarnings(what string, warnings engine.Warnings) {
	for _, w := range warnings {
		log.Printf("[usecase] %s: %s", what, w)
	}
}
