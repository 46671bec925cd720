package dailyhealth

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mallkiller3-ctrl/daily-health/internal/service"
)

var (
	photoDate string
	photoOut  string
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage body check photos",
}

var photoAddCmd = &cobra.Command{
	Use:   "add <image-file>",
	Short: "Store a body check photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			date, err := resolveDate(tr, photoDate)
			if err != nil {
				return err
			}
			photo, err := service.AddPhotoFromFile(tr, date, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored photo %s for %s\n", photo.ID, photo.Date)
			return nil
		})
	},
}

var photoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List body check photos, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTYPE\tBYTES")
			for _, p := range tr.Photos() {
				raw, mime, err := service.DecodeDataURI(p.ImageURL)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tinvalid\t0\n", p.ID, p.Date)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", p.ID, p.Date, mime, len(raw))
			}
			return nil
		})
	},
}

var photoSaveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Write a stored photo to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			photo, err := tr.FindPhoto(args[0])
			if err != nil {
				return err
			}
			raw, mime, err := service.DecodeDataURI(photo.ImageURL)
			if err != nil {
				return err
			}
			out := photoOut
			if out == "" {
				out = "bodycheck-" + photo.Date + service.ImageExtension(mime)
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("write photo: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved photo %s to %s\n", photo.ID, out)
			return nil
		})
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a body check photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(_ *sql.DB, tr *service.Tracker) error {
			if err := tr.DeletePhoto(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted photo %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(photoCmd)
	photoCmd.AddCommand(photoAddCmd, photoListCmd, photoSaveCmd, photoDeleteCmd)
	photoAddCmd.Flags().StringVar(&photoDate, "date", "", "Date YYYY-MM-DD (default today)")
	photoSaveCmd.Flags().StringVar(&photoOut, "out", "", "Output file (default bodycheck-<date>.<ext>)")
}
