package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/enrich"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/geocode"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

func idsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "ids <plan.json|->",
		Short: "Give every item of a plan a stable id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), g.output, itinerary.NewIDAssigner().Assign(plan))
		},
	}
}

type enrichOutput struct {
	Plan  models.TripPlan `json:"plan"`
	Stats enrich.Stats    `json:"stats"`
}

func enrichCmd(g *globals) *cobra.Command {
	var (
		region string
		lang   string
		near   string
	)

	cmd := &cobra.Command{
		Use:   "enrich <plan.json|->",
		Short: "Fill in missing coordinates by geocoding place names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proximity, err := parsePoint(near)
			if err != nil {
				return err
			}
			plan, err := readPlan(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			svc := enrich.NewServiceImpl(batchResolver(cfg, g.log), g.log)
			out, stats := svc.Enrich(cmd.Context(), itinerary.NewIDAssigner().Assign(plan), enrich.Options{
				RegionHint: region,
				Language:   lang,
				Proximity:  proximity,
			})
			g.log.Info("Enrichment finished",
				zap.Int("resolved", stats.Resolved),
				zap.Int("unresolved", stats.Unresolved),
				zap.Bool("batch_failed", stats.BatchFailed))

			return writeResult(cmd.OutOrStdout(), g.output, enrichOutput{Plan: out, Stats: stats})
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Region hint appended to every lookup, e.g. \"Tokyo Japan\"")
	cmd.Flags().StringVar(&lang, "lang", "", "Result language (BCP-47), DEFAULT_LANGUAGE when empty")
	cmd.Flags().StringVar(&near, "near", "", "Bias lookups towards lat,lng")
	return cmd
}

type resolveOutput struct {
	OK        bool     `json:"ok"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Name      string   `json:"name,omitempty"`
	PlaceName string   `json:"place_name,omitempty"`
}

func resolveCmd(g *globals) *cobra.Command {
	var (
		lang string
		near string
	)

	cmd := &cobra.Command{
		Use:   "resolve <query...>",
		Short: "Geocode a single free-text place query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proximity, err := parsePoint(near)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			res, err := mapboxResolver(cfg, g.log).Resolve(cmd.Context(), geocode.Query{
				Text:      strings.Join(args, " "),
				Language:  lang,
				Proximity: proximity,
			})
			if err != nil {
				return err
			}
			out := resolveOutput{OK: res.Resolved}
			if res.Resolved {
				out.Lat, out.Lng = models.Float64(res.Lat), models.Float64(res.Lng)
				out.Name, out.PlaceName = res.Name, res.DisplayName
			}
			return writeResult(cmd.OutOrStdout(), g.output, out)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Result language (BCP-47)")
	cmd.Flags().StringVar(&near, "near", "", "Bias the lookup towards lat,lng")
	return cmd
}

func legsCmd(g *globals) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "legs <plan.json|->",
		Short: "Estimate travel between consecutive located items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := geo.ParseTravelMode(mode)
			if err != nil {
				return err
			}
			plan, err := readPlan(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			out := itinerary.LegsResponse{Mode: m, Days: itinerary.PlanLegs(plan, m)}
			points := itinerary.LocatedPoints(plan)
			if center, ok := geo.CalculateCenterPoint(points); ok {
				out.Center = &center
			}
			if bounds, ok := geo.CalculateBounds(points); ok {
				out.Bounds = &bounds
			}
			return writeResult(cmd.OutOrStdout(), g.output, out)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(geo.ModeWalk), "Travel mode (walk, transit, car)")
	return cmd
}

func mapboxResolver(cfg *config.Config, log *zap.Logger) *geocode.MapboxResolver {
	return geocode.NewMapboxResolver(geocode.MapboxConfig{
		Token:           cfg.Mapbox.Token,
		BaseURL:         cfg.Mapbox.BaseURL,
		DefaultLanguage: cfg.Mapbox.DefaultLanguage,
	}, log)
}

func batchResolver(cfg *config.Config, log *zap.Logger) geocode.BatchResolver {
	if cfg.Geocode.BatchURL != "" {
		return geocode.NewHTTPBatchClient(cfg.Geocode.BatchURL, nil, log)
	}
	return geocode.NewLocalBatchResolver(mapboxResolver(cfg, log), cfg.Geocode.Concurrency, cfg.Geocode.Timeout, log)
}

// parsePoint reads "lat,lng". An empty string means no point.
func parsePoint(s string) (*geo.Point, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("point %q: want lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("point %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("point %q: %w", s, err)
	}
	p := geo.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return nil, fmt.Errorf("point %q: out of range", s)
	}
	return &p, nil
}
