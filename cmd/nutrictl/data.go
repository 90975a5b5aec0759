package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newSeedCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo profile, meals, trends and meal plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.api().do(cmd.Context(), http.MethodPost, "/api/sample-data", nil); err != nil {
				return err
			}
			success(cmd, "Sample data loaded")
			return nil
		},
	}
}

func newResetCmd(app *cli) *cobra.Command {
	var yes, sampleOnly bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete data without --yes")
			}
			path := "/api/profile"
			if sampleOnly {
				path = "/api/sample-data"
			}
			_, err := app.api().do(cmd.Context(), http.MethodDelete, path, nil)
			var apiErr *apiError
			if sampleOnly && errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				notice(cmd, "Skipped: sample data is not active")
				return nil
			}
			if err != nil {
				return err
			}
			success(cmd, "All data deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	cmd.Flags().BoolVar(&sampleOnly, "sample-only", false, "Only delete when the demo profile is active")
	return cmd
}

type goalsView struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
}

func newGoalsCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Show the daily nutrition goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			var g goalsView
			if err := app.api().getJSON(cmd.Context(), "/api/goals", &g); err != nil {
				return err
			}
			plain(cmd, "Calories: %.0f kcal (BMR %.0f, TDEE %.0f)", g.Calories, g.BMR, g.TDEE)
			plain(cmd, "Protein:  %.0f g", g.Protein)
			plain(cmd, "Carbs:    %.0f g", g.Carbs)
			plain(cmd, "Fats:     %.0f g", g.Fats)
			plain(cmd, "Fiber:    %.0f g", g.Fiber)
			return nil
		},
	}
}

func newTodayCmd(app *cli) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the dashboard summary for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/dashboard"
			if date != "" {
				path += "?date=" + url.QueryEscape(date)
			}
			var d struct {
				Daily struct {
					Date     string    `json:"date"`
					Target   goalsView `json:"target"`
					Consumed goalsView `json:"consumed"`
					Meals    []struct {
						Time string `json:"time"`
						Type string `json:"type"`
						Name string `json:"name"`
					} `json:"meals"`
				} `json:"daily"`
				Score           int      `json:"score"`
				ScoreBand       string   `json:"scoreBand"`
				Recommendations []string `json:"recommendations"`
			}
			if err := app.api().getJSON(cmd.Context(), path, &d); err != nil {
				return err
			}

			plain(cmd, "%s  score %d (%s)", d.Daily.Date, d.Score, d.ScoreBand)
			plain(cmd, "Calories %.0f / %.0f   Protein %.0f / %.0f g",
				d.Daily.Consumed.Calories, d.Daily.Target.Calories,
				d.Daily.Consumed.Protein, d.Daily.Target.Protein)
			for _, m := range d.Daily.Meals {
				plain(cmd, "  %s  %-9s %s", m.Time, m.Type, m.Name)
			}
			for _, r := range d.Recommendations {
				notice(cmd, "- %s", r)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	return cmd
}
