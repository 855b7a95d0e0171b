package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samirrijal/carbontrack/internal/catalog"
	"github.com/samirrijal/carbontrack/internal/core/domain"
	"github.com/samirrijal/carbontrack/internal/core/usecases"
	"github.com/samirrijal/carbontrack/internal/pkg/geospatial"
)

// =============================================================================
// PLANTS
// =============================================================================

func newPlantsCmd() *cobra.Command {
	var search, sortBy, water, plantType, carbon string

	cmd := &cobra.Command{
		Use:   "plants",
		Short: "Search, filter and sort the plant catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := usecases.NewCatalogService(catalog.Default(), nil)
			plants := svc.Query(context.Background(), catalog.ParseQuery(search, sortBy, water, plantType, carbon))

			out := cmd.OutOrStdout()
			if outputFormat == "json" {
				return writeJSON(out, plants)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tWATER\tCARBON/YR")
			for _, p := range plants {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\n", p.ID, p.Name, p.PlantType, p.WaterNeeds, p.CarbonSequestration)
			}
			fmt.Fprintf(tw, "\n%d of %d plants\n", len(plants), svc.Total())
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "q", "", "Case-insensitive text in name or description")
	cmd.Flags().StringVar(&sortBy, "sort", "", "name-asc, name-desc, carbon-high, carbon-low, water-low or water-high")
	cmd.Flags().StringVar(&water, "water", domain.FilterAll, "low, medium, high or all")
	cmd.Flags().StringVar(&plantType, "type", domain.FilterAll, "tree, shrub, grass, flower, herb, vine or all")
	cmd.Flags().StringVar(&carbon, "carbon", domain.FilterAll, "low, medium, high or all")
	return cmd
}

// =============================================================================
// AREA
// =============================================================================

func newAreaCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "area [lat,lon ...]",
		Short: "Estimate the area of a boundary",
		Long: `Estimates the area enclosed by a boundary given as "lat,lon" arguments
or as a YAML list of {lat, lon} points in --file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := parsePoints(args)
			if err != nil {
				return err
			}
			if file != "" {
				fromFile, err := readPointsFile(file)
				if err != nil {
					return err
				}
				points = append(points, fromFile...)
			}

			area := geospatial.EstimateArea(points)
			result := map[string]interface{}{
				"points":      len(points),
				"area_m2":     area,
				"area_km2":    area / 1e6,
				"perimeter_m": geospatial.Perimeter(points),
			}
			out := cmd.OutOrStdout()
			if outputFormat == "json" {
				return writeJSON(out, result)
			}
			fmt.Fprintf(out, "points:    %d\narea:      %.2f m² (%.4f km²)\nperimeter: %.2f m\n",
				len(points), area, area/1e6, result["perimeter_m"])
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with boundary points")
	return cmd
}

func parsePoints(args []string) ([]domain.GeoPoint, error) {
	points := make([]domain.GeoPoint, 0, len(args))
	for _, a := range args {
		latStr, lonStr, ok := strings.Cut(a, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: want lat,lon", a)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: bad latitude: %w", a, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: bad longitude: %w", a, err)
		}
		points = append(points, domain.GeoPoint{Lat: lat, Lon: lon})
	}
	return points, nil
}

func readPointsFile(path string) ([]domain.GeoPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundary: %w", err)
	}
	var points []domain.GeoPoint
	if err := yaml.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parse boundary %s: %w", path, err)
	}
	return points, nil
}

// =============================================================================
// PROJECT
// =============================================================================

func newProjectCmd() *cobra.Command {
	var (
		selections []string
		years      int
	)

	cmd := &cobra.Command{
		Use:     "project",
		Short:   "Project cumulative carbon sequestration",
		Example: "  carbonctl project --select 1:100 --select 3:50 --years 10",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelections(selections)
			if err != nil {
				return err
			}
			svc := usecases.NewProjectionService(catalog.Default())
			proj, err := svc.Project(context.Background(), sel, years)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputFormat == "json" {
				return writeJSON(out, proj)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "YEAR\tCUMULATIVE")
			for i, v := range proj.Cumulative {
				fmt.Fprintf(tw, "%d\t%.2f\n", i+1, v)
			}
			fmt.Fprintf(tw, "\nannual rate: %.2f\ntotal:       %.2f\n", proj.AnnualRate, proj.Total)
			if len(proj.SkippedIDs) > 0 {
				fmt.Fprintf(tw, "skipped:     %v\n", proj.SkippedIDs)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringArrayVarP(&selections, "select", "s", nil, "Plant selection as id:quantity (repeatable)")
	cmd.Flags().IntVarP(&years, "years", "y", 10, "Projection horizon in years")
	return cmd
}

func parseSelections(raw []string) ([]domain.PlantSelection, error) {
	out := make([]domain.PlantSelection, 0, len(raw))
	for _, r := range raw {
		idStr, qtyStr, ok := strings.Cut(r, ":")
		if !ok {
			return nil, fmt.Errorf("selection %q: want id:quantity", r)
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("selection %q: bad plant id: %w", r, err)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("selection %q: bad quantity: %w", r, err)
		}
		out = append(out, domain.PlantSelection{PlantID: id, Quantity: qty})
	}
	return out, nil
}

// =============================================================================
// MICROCLIMATE
// =============================================================================

func newMicroclimateCmd() *cobra.Command {
	var r domain.ClimateReading

	cmd := &cobra.Command{
		Use:   "microclimate",
		Short: "Categorise a temperature, humidity and rainfall reading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category := domain.CategorizeMicroclimate(r)
			if outputFormat == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"category": category, "reading": r})
			}
			fmt.Fprintln(cmd.OutOrStdout(), category)
			return nil
		},
	}
	cmd.Flags().Float64Var(&r.TempC, "temp", 0, "Average temperature in °C")
	cmd.Flags().Float64Var(&r.HumidityPercent, "humidity", 0, "Average relative humidity in %")
	cmd.Flags().Float64Var(&r.RainfallMM, "rainfall", 0, "Annual rainfall in mm")
	for _, f := range []string{"temp", "humidity", "rainfall"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
