// ABOUTME: CLI commands for the user profile.
// ABOUTME: Handles show, set, and photo upload.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
	"github.com/spf13/cobra"
)

var (
	profileName   string
	profileEmail  string
	profileDOB    string
	profileGender string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
	Long: `Manage your profile. The date of birth sets the default age
for the BMI and insurance calculators.

EXAMPLES:

  agewell profile set --name "Asha Rao" --dob 1958-06-01
  agewell profile show
  agewell profile photo ~/Pictures/me.jpg`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := svc.Profile()
		out := cmd.OutOrStdout()
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintln(out, "No profile yet. Run 'agewell profile set --name \"Your Name\"'.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Name    %s\n", p.FullName)
		if p.Email != "" {
			fmt.Fprintf(out, "Email   %s\n", p.Email)
		}
		if p.DateOfBirth != nil {
			dob := p.DateOfBirth.Format(models.DateFormat)
			if age, ok := p.Age(time.Now()); ok {
				dob += faint.Sprintf(" (age %d)", age)
			}
			fmt.Fprintf(out, "Born    %s\n", dob)
		}
		if p.Gender != nil {
			fmt.Fprintf(out, "Gender  %s\n", *p.Gender)
		}
		if p.PhotoURL != nil {
			fmt.Fprintf(out, "Photo   %s\n", *p.PhotoURL)
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := svc.Profile()
		switch {
		case errors.Is(err, storage.ErrNotFound):
			p = models.NewProfile("")
		case err != nil:
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			p.FullName = strings.TrimSpace(profileName)
		}
		if flags.Changed("email") {
			p.Email = strings.TrimSpace(profileEmail)
		}
		if flags.Changed("dob") {
			if profileDOB == "" {
				p.DateOfBirth = nil
			} else {
				dob, err := models.ParseDate(profileDOB)
				if err != nil {
					return fmt.Errorf("invalid date of birth: %s (use YYYY-MM-DD)", profileDOB)
				}
				p.DateOfBirth = &dob
			}
		}
		if flags.Changed("gender") {
			if g := strings.TrimSpace(profileGender); g != "" {
				p.Gender = &g
			} else {
				p.Gender = nil
			}
		}

		if err := svc.UpdateProfile(p); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Saved profile for %s", p.FullName)
		return nil
	},
}

var profilePhotoCmd = &cobra.Command{
	Use:   "photo <path>",
	Short: "Upload a profile photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cfg.OpenPhotoStore()
		if err != nil {
			return err
		}
		p, err := svc.UploadPhoto(store, args[0])
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Uploaded photo to %s", *p.PhotoURL)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "full name")
	profileSetCmd.Flags().StringVar(&profileEmail, "email", "", "email address")
	profileSetCmd.Flags().StringVar(&profileDOB, "dob", "", "date of birth (YYYY-MM-DD)")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "gender")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profilePhotoCmd)
	rootCmd.AddCommand(profileCmd)
}
