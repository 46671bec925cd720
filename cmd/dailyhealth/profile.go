package dailyhealth

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			p := tr.Profile()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", p.Name)
			fmt.Fprintf(out, "Birth date: %s (age %d)\n", p.BirthDate, tracker.Age(p.BirthDate, tr.Now()))
			fmt.Fprintf(out, "Gender: %s\n", p.Gender)
			fmt.Fprintf(out, "Height: %.1f cm\n", p.Height)
			fmt.Fprintf(out, "Current weight: %s kg\n", formatKg(p.CurrentWeight))
			fmt.Fprintf(out, "Target weight: %s kg\n", formatKg(p.TargetWeight))
			fmt.Fprintf(out, "Phase: %s\n", p.Phase.Label())
			mounjaro := "off"
			if p.MounjaroActive {
				mounjaro = "on"
				if p.MounjaroStartDate != "" {
					mounjaro += " since " + p.MounjaroStartDate
				}
			}
			fmt.Fprintf(out, "Mounjaro: %s\n", mounjaro)
			return nil
		})
	},
}

var (
	profileName          string
	profileBirthDate     string
	profileGender        string
	profileHeight        float64
	profileTarget        float64
	profilePhase         string
	profileMounjaro      bool
	profileMounjaroStart string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		changed := 0
		for _, name := range []string{"name", "birth-date", "gender", "height", "target-weight", "phase", "mounjaro", "mounjaro-start"} {
			if flags.Changed(name) {
				changed++
			}
		}
		if changed == 0 {
			return fmt.Errorf("set at least one flag")
		}
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			p, err := tr.UpdateProfile(func(p model.Profile) model.Profile {
				if flags.Changed("name") {
					p.Name = strings.TrimSpace(profileName)
				}
				if flags.Changed("birth-date") {
					p.BirthDate = strings.TrimSpace(profileBirthDate)
				}
				if flags.Changed("gender") {
					p.Gender = model.Gender(strings.ToLower(strings.TrimSpace(profileGender)))
				}
				if flags.Changed("height") {
					p.Height = profileHeight
				}
				if flags.Changed("target-weight") {
					p.TargetWeight = tracker.RoundWeight(profileTarget)
				}
				if flags.Changed("phase") {
					p.Phase = model.Phase(strings.ToLower(strings.TrimSpace(profilePhase)))
				}
				if flags.Changed("mounjaro") {
					p.MounjaroActive = profileMounjaro
					if profileMounjaro && p.MounjaroStartDate == "" && !flags.Changed("mounjaro-start") {
						p.MounjaroStartDate = tr.Now().Format(model.DateLayout)
					}
				}
				if flags.Changed("mounjaro-start") {
					p.MounjaroStartDate = strings.TrimSpace(profileMounjaroStart)
				}
				return p
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated profile for %s\n", p.Name)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	f := profileSetCmd.Flags()
	f.StringVar(&profileName, "name", "", "Display name")
	f.StringVar(&profileBirthDate, "birth-date", "", "Birth date YYYY-MM-DD")
	f.StringVar(&profileGender, "gender", "", "Gender: male|female|other")
	f.Float64Var(&profileHeight, "height", 0, "Height in cm")
	f.Float64Var(&profileTarget, "target-weight", 0, "Target weight in kg")
	f.StringVar(&profilePhase, "phase", "", "Phase: diet|maintenance")
	f.BoolVar(&profileMounjaro, "mounjaro", false, "Track Mounjaro doses")
	f.StringVar(&profileMounjaroStart, "mounjaro-start", "", "Mounjaro start date YYYY-MM-DD")
}
