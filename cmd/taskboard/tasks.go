package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

func categoryColor(name string) func(a ...interface{}) string {
	switch model.ColorFor(name) {
	case model.ColorBlue:
		return color.New(color.FgBlue).SprintFunc()
	case model.ColorGreen:
		return green
	case model.ColorYellow:
		return yellow
	default:
		return gray
	}
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer s.Close()

			selector, ok := model.CanonicalFilter(category)
			if !ok {
				return unknownCategory(category)
			}
			if err := s.board.SetFilter(selector); err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), s.board.Visible())
			printLastSaved(cmd, s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", model.FilterAll, "All or one of "+strings.Join(model.CategoryNames(), ", "))
	return cmd
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintf(w, "%s\n", gray("No tasks"))
		return
	}
	for _, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = green("[x]")
		}
		fmt.Fprintf(w, "%s %d %s %s\n", check, t.ID, t.Title, categoryColor(t.Category)("#"+t.Category))
		fmt.Fprintf(w, "    %s\n", gray("created "+t.CreatedAt))
		if t.Completed {
			fmt.Fprintf(w, "    %s\n", green("completed "+t.CompletedAtText()))
		}
	}
}

func printLastSaved(cmd *cobra.Command, s *session) {
	ts, ok := s.kv.(storage.Timestamper)
	if !ok {
		return
	}
	at, found, err := ts.UpdatedAt(cmd.Context(), s.cfg.StorageKey)
	if err != nil {
		s.logger.Warn("read last saved time", "err", err)
		return
	}
	if found {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", gray("last saved "+at.Local().Format(s.cfg.TimeLayout)))
	}
}

func unknownCategory(name string) error {
	return fmt.Errorf("%w: %q (want one of %s)", model.ErrUnknownCategory, name, strings.Join(model.CategoryNames(), ", "))
}

func newAddCmd(flags *rootFlags) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := model.CanonicalCategory(category)
			if !ok {
				return unknownCategory(category)
			}
			s, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer s.Close()

			task, added, err := s.board.Add(cmd.Context(), strings.Join(args, " "), name)
			if err != nil {
				return err
			}
			if !added {
				// blank titles are dropped without a message
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added %d %s %s\n", green("✓"), task.ID, task.Title, categoryColor(task.Category)("#"+task.Category))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", model.DefaultCategory().Name, "task category: "+strings.Join(model.CategoryNames(), ", "))
	return cmd
}

func newDoneCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.board.Toggle(cmd.Context(), id)
			if res == store.NotFound {
				notFound(cmd.OutOrStdout(), id)
				return nil
			}
			if err != nil {
				return err
			}
			task, _ := s.board.Get(id)
			state := "reopened"
			if task.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d %s\n", green("✓"), state, id, task.Title)
			return nil
		},
	}
}

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.board.Delete(cmd.Context(), id)
			if res == store.NotFound {
				notFound(cmd.OutOrStdout(), id)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deleted %d\n", green("✓"), id)
			return nil
		},
	}
}

func newEditCmd(flags *rootFlags) *cobra.Command {
	var title, category string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or category of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if title == "" && category == "" {
				return fmt.Errorf("edit: nothing to change, pass --title or --category")
			}
			s, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if s.board.BeginEdit(id) == store.NotFound {
				notFound(cmd.OutOrStdout(), id)
				return nil
			}
			if title != "" {
				s.board.SetTitle(title)
			}
			if category != "" {
				name, ok := model.CanonicalCategory(category)
				if !ok {
					return unknownCategory(category)
				}
				if err := s.board.SetCategory(name); err != nil {
					return err
				}
			}
			res, err := s.board.Submit(cmd.Context())
			if err != nil {
				return err
			}
			if res != board.SubmitSaved {
				return nil
			}
			task, _ := s.board.Get(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s saved %d %s %s\n", green("✓"), id, task.Title, categoryColor(task.Category)("#"+task.Category))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category: "+strings.Join(model.CategoryNames(), ", "))
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the category registry",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range model.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", categoryColor(c.Name)(c.Name), gray(string(c.Color)))
			}
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %s", raw)
	}
	return id, nil
}

func notFound(w io.Writer, id int64) {
	fmt.Fprintf(w, "%s task %d not found\n", yellow("!"), id)
}
