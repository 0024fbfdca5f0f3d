package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"microhub/internal/bootstrap"
	coursedto "microhub/internal/modules/course/dto"
	"microhub/internal/platform/config"
	"microhub/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	home string
	open bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "microhub",
		Short:         "Microlearning hub: short courses, quizzes and access codes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.home, "home", "", "data directory (defaults to $MICROHUB_HOME or .)")
	root.PersistentFlags().BoolVar(&flags.open, "open", false, "open WhatsApp links in the browser")

	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newCatalogCmd(&flags))
	root.AddCommand(newCourseCmd(&flags))
	root.AddCommand(newProgressCmd(&flags))
	root.AddCommand(newAccessCmd(&flags))
	root.AddCommand(newPayCmd(&flags))
	root.AddCommand(newContactCmd(&flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.home)
	if err != nil {
		return config.Config{}, err
	}
	if flags.open {
		cfg.OpenLinks = true
	}
	return cfg, nil
}

// loadApp wires the application for one CLI invocation. Logs go to stderr
// and links are printed to out.
func loadApp(flags *globalFlags, out io.Writer) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logging.New(os.Stderr, cfg.LogLevel), out)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the microhub terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, closer, err := logging.OpenFile(cfg.LogPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()

			app, err := bootstrap.New(cfg, logger, io.Discard)
			if err != nil {
				return err
			}
			defer app.Close()
			logger.Info("tui started", "home", cfg.HomePath)
			return bootstrap.RunTUI(app)
		},
	}
}

func newCatalogCmd(flags *globalFlags) *cobra.Command {
	catalog := &cobra.Command{Use: "catalog", Short: "Browse the course catalog"}

	var category, level string
	list := &cobra.Command{
		Use:   "list",
		Short: "List courses, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			courses, err := app.CatalogCLI.List(context.Background(), category, level)
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no courses")
				return nil
			}
			for _, c := range courses {
				price := c.Price
				if c.IsFree {
					price = "FREE"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%d lessons\t%s\n", c.ID, c.Title, c.Category, c.Level, c.TotalLessons, price)
			}
			return nil
		},
	}
	list.Flags().StringVar(&category, "category", "All", "category filter")
	list.Flags().StringVar(&level, "level", "All", "level filter")

	show := &cobra.Command{
		Use:   "show <course-id>",
		Short: "Show course details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			c, err := app.CatalogCLI.Show(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "id: %s\ntitle: %s\ncategory: %s\nlevel: %s\nduration: %s\nlessons: %d\nstudents: %d\nrating: %.1f\ncompletion: %d%%\nfree: %t\n",
				c.ID, c.Title, c.Category, c.Level, c.Duration, c.TotalLessons, c.Students, c.Rating, c.CompletionRate, c.IsFree)
			if c.Description != "" {
				_, _ = fmt.Fprintf(w, "\n%s\n", c.Description)
			}
			for _, l := range c.Lessons {
				_, _ = fmt.Fprintf(w, "  %d. %s\n", l.Number, l.Title)
			}
			if !c.HasLessons() {
				_, _ = fmt.Fprintln(w, "lessons coming soon")
			}
			return nil
		},
	}

	filters := &cobra.Command{
		Use:   "filters",
		Short: "List available categories and levels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			f, err := app.CatalogCLI.Filters(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "categories: %s\nlevels: %s\n", strings.Join(f.Categories, ", "), strings.Join(f.Levels, ", "))
			return nil
		},
	}

	catalog.AddCommand(list, show, filters)
	return catalog
}

func newCourseCmd(flags *globalFlags) *cobra.Command {
	course := &cobra.Command{Use: "course", Short: "Take a course"}

	course.AddCommand(&cobra.Command{
		Use:   "open <course-id>",
		Short: "Show lessons and progress for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			view, err := app.CourseCLI.Open(context.Background(), args[0])
			if err != nil {
				return err
			}
			printCourseView(cmd.OutOrStdout(), view)
			return nil
		},
	})

	course.AddCommand(&cobra.Command{
		Use:   "lesson <course-id> <n>",
		Short: "Print a lesson",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid lesson number %q", args[1])
			}
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			lesson, err := app.CourseCLI.Lesson(context.Background(), args[0], n)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# Lesson %d: %s\n\n%s\n", lesson.Number, lesson.Title, lesson.Content)
			return nil
		},
	})

	course.AddCommand(&cobra.Command{
		Use:   "complete <course-id> <n>",
		Short: "Mark a lesson complete and unlock the next one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid lesson number %q", args[1])
			}
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.CourseCLI.Complete(context.Background(), args[0], n)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Notice)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			printCourseView(cmd.OutOrStdout(), out.View)
			return nil
		},
	})

	course.AddCommand(&cobra.Command{
		Use:   "redeem <course-id> <code>",
		Short: "Unlock a course with an access code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.CourseCLI.Redeem(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			if !out.Accepted {
				return fmt.Errorf("code rejected: %s", out.Reason)
			}
			return nil
		},
	})

	var answers []string
	var name, phone string
	quiz := &cobra.Command{
		Use:   "quiz <course-id>",
		Short: "Show the quiz, or submit it with --answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			if len(answers) == 0 {
				out, err := app.CourseCLI.Quiz(ctx, args[0])
				if err != nil {
					return err
				}
				for _, q := range out.Questions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Q%d: %s\n", q.ID, q.Prompt)
					for i, c := range q.Choices {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   %d) %s\n", i+1, c)
					}
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nsubmit with --answer <id>=<text> for every question plus --name and --phone")
				return nil
			}
			parsed, err := parseAnswers(answers)
			if err != nil {
				return err
			}
			out, err := app.CourseCLI.Submit(cmd.Context(), args[0], parsed, name, phone)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\nsubmission: %s\n", out.Notice, out.SubmissionID)
			if out.NotePath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "archived: %s\n", out.NotePath)
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}
	quiz.Flags().StringArrayVar(&answers, "answer", nil, "answer as <question-id>=<text>; repeat per question")
	quiz.Flags().StringVar(&name, "name", "", "your name")
	quiz.Flags().StringVar(&phone, "phone", "", "your WhatsApp number")
	course.AddCommand(quiz)

	return course
}

func newProgressCmd(flags *globalFlags) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Inspect and manage stored progress"}

	progress.AddCommand(&cobra.Command{
		Use:   "show <course-id>",
		Short: "Show stored progress for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			course, err := app.CatalogCLI.Show(ctx, args[0])
			if err != nil {
				return err
			}
			p, err := app.ProgressCLI.Show(ctx, course.ID, course.IsFree)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "course: %s\ncompleted: %v\nunlocked: %v\naccess: %t\ncode: %s\nquiz submitted: %t\n",
				p.CourseID, p.CompletedLessons, p.UnlockedLessons, p.HasAccess, p.AccessCode, p.QuizSubmitted)
			return nil
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every course with stored progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.ProgressCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no progress yet")
				return nil
			}
			for _, p := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tcompleted=%d\taccess=%t\tquiz=%t\n", p.CourseID, p.CompletedCount, p.HasAccess, p.QuizSubmitted)
			}
			return nil
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "reset <course-id>",
		Short: "Reset a course to its starting state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			course, err := app.CatalogCLI.Show(ctx, args[0])
			if err != nil {
				return err
			}
			out, err := app.ProgressCLI.Reset(ctx, course.ID, course.IsFree)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "progress reset: %s\n", course.ID)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite projection from the progress file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ProgressCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "Summarize progress from the SQLite projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			rows, err := app.ProgressCLI.Report(context.Background())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no progress yet")
				return nil
			}
			for _, r := range rows {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tcompleted=%d\tunlocked_max=%d\taccess=%t\tquiz=%t\tupdated=%s\n",
					r.CourseID, r.CompletedCount, r.UnlockedMax, r.HasAccess, r.QuizSubmitted, r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
			}
			return nil
		},
	})

	return progress
}

func newAccessCmd(flags *globalFlags) *cobra.Command {
	access := &cobra.Command{Use: "access", Short: "Access code tools"}
	access.AddCommand(&cobra.Command{
		Use:   "check <code>",
		Short: "Check whether a code would be accepted, without redeeming it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			out := app.AccessCLI.Check(context.Background(), args[0])
			if !out.Accepted {
				return fmt.Errorf("code %q rejected: %s", out.Code, out.Reason)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "accepted: %s (%s)\n", out.Code, out.Kind)
			return nil
		},
	})
	return access
}

func newPayCmd(flags *globalFlags) *cobra.Command {
	pay := &cobra.Command{Use: "pay", Short: "Simulated M-Pesa till payments"}

	pay.AddCommand(&cobra.Command{
		Use:   "plans",
		Short: "List pricing plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			for _, p := range app.PaymentCLI.Plans(context.Background()) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", p.Name, p.Title, p.Price, p.Description)
			}
			return nil
		},
	})

	pay.AddCommand(&cobra.Command{
		Use:   "start <plan>",
		Short: "Show till instructions and notify the admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PaymentCLI.Start(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pay %s via M-Pesa\nmethod: %s\ntill: %s\nreference: %s\n",
				out.Plan.Price, out.Method, out.Till, out.Reference)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	})

	pay.AddCommand(&cobra.Command{
		Use:   "confirm <plan> <mpesa-message>",
		Short: "Submit the M-Pesa confirmation and receive an access code",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Processing payment…")
			out, err := app.PaymentCLI.Confirm(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Payment Confirmed! Your access code is: %s\n", out.Code)
			if out.ReceiptPath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "receipt: %s\n", out.ReceiptPath)
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	})

	return pay
}

func printCourseView(w io.Writer, v coursedto.CourseView) {
	_, _ = fmt.Fprintf(w, "%s [%s]\n", v.Title, v.Stage)
	if v.Notice != "" {
		_, _ = fmt.Fprintln(w, v.Notice)
	}
	if !v.Unlocked || !v.HasLessons {
		return
	}
	_, _ = fmt.Fprintf(w, "progress: %d/%d (%d%%)\n", v.Completed, v.Total, v.Percent)
	for _, l := range v.Lessons {
		marker := " "
		switch l.State {
		case "completed":
			marker = "✓"
		case "unlocked":
			marker = "▶"
		case "locked":
			marker = "·"
		}
		_, _ = fmt.Fprintf(w, "  %s %d. %s\n", marker, l.Number, l.Title)
	}
}

func printWarning(w io.Writer, warning string) {
	if warning != "" {
		_, _ = fmt.Fprintln(w, "warning: "+warning)
	}
}

// parseAnswers turns repeated id=text flags into the quiz answer map.
func parseAnswers(raw []string) (map[int]string, error) {
	out := make(map[int]string, len(raw))
	for _, item := range raw {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q must look like <id>=<text>", item)
		}
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("answer %q: invalid question id", item)
		}
		out[id] = value
	}
	return out, nil
}
