package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"task-manager/client/internal/controller"
	"task-manager/client/internal/models"
)

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func printTask(task models.Task) {
	state := " "
	if task.Completed {
		state = "x"
	}
	fmt.Printf("[%s] #%-4d %-8s %s", state, task.ID, task.Priority, task.Title)
	if task.DueDate != "" {
		fmt.Printf("  (due %s", task.DueDate)
		if task.DueTime != "" {
			fmt.Printf(" %s", task.DueTime)
		}
		fmt.Print(")")
	}
	fmt.Println()
}

func listCmd() *cobra.Command {
	var completedOnly, openOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			var filter *bool
			if completedOnly {
				v := true
				filter = &v
			} else if openOnly {
				v := false
				filter = &v
			}

			tasks, err := app.repo.ListTasks(cmd.Context(), filter)
			if err != nil {
				return errors.New(controller.UserMessage(err, "Failed to load tasks"))
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks")
				return nil
			}
			for _, task := range tasks {
				printTask(task)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&completedOnly, "completed", false, "Only completed tasks")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Only open tasks")
	cmd.MarkFlagsMutuallyExclusive("completed", "open")

	return cmd
}

func addCmd() *cobra.Command {
	var description, dueDate, dueTime, priority string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			task, err := app.list.Add(cmd.Context(), models.TaskCreate{
				Title:       args[0],
				Description: description,
				DueDate:     dueDate,
				DueTime:     dueTime,
				Priority:    models.Priority(priority),
				Tags:        tags,
			})
			if err != nil {
				return errors.New(controller.UserMessage(err, "Failed to create task"))
			}

			printTask(task)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dueTime, "time", "", "Due time (HH:MM)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: low, medium or high")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (repeatable)")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}

			task, err := app.repo.GetTask(cmd.Context(), id)
			if err != nil {
				return errors.New(controller.UserMessage(err, "Failed to load task"))
			}

			printTask(task)
			if task.Description != "" {
				fmt.Printf("    %s\n", task.Description)
			}
			if task.Tags != "" {
				fmt.Printf("    tags: %s\n", task.Tags)
			}
			fmt.Printf("    version %d, updated %s\n", task.Version, task.UpdatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	var title, description, dueDate, dueTime, priority string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}

			// Only flags the user actually set travel to the server.
			var update models.TaskUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("due") {
				update.DueDate = &dueDate
			}
			if cmd.Flags().Changed("time") {
				update.DueTime = &dueTime
			}
			if cmd.Flags().Changed("priority") {
				p := models.Priority(priority)
				update.Priority = &p
			}

			task, err := app.list.Edit(cmd.Context(), id, update)
			if err != nil {
				return errors.New(controller.UserMessage(err, "Failed to update task"))
			}

			printTask(task)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&dueDate, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dueTime, "time", "", "New due time (HH:MM)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")

	return cmd
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}

			task, err := app.list.Toggle(cmd.Context(), id)
			if err != nil {
				return errors.New(controller.UserMessage(err, "Failed to toggle task"))
			}

			printTask(task)
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}

			if err := app.list.Remove(cmd.Context(), id); err != nil {
				return errors.New(controller.UserMessage(err, "Failed to delete task"))
			}

			fmt.Printf("Deleted task %d\n", id)
			return nil
		},
	}
}
