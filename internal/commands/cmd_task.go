package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskpad/internal/core/task"
	"github.com/colonyops/taskpad/pkg/iojson"
)

// TaskCmd implements the scriptable task subcommands.
type TaskCmd struct {
	flags *Flags
	app   *App

	// list flags
	listAll  bool
	listDone bool
}

// NewTaskCmd creates the task command set.
func NewTaskCmd(flags *Flags, app *App) *TaskCmd {
	return &TaskCmd{flags: flags, app: app}
}

// Register adds the task subcommands to the application.
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		cmd.addCmd(),
		cmd.lsCmd(),
		cmd.editCmd(),
		cmd.toggleCmd(),
		cmd.rmCmd(),
	)

	return app
}

func (cmd *TaskCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "taskpad add [text...]",
		Description: `Adds a task to the top of the list.

With no arguments, prompts for the text interactively.

Examples:
  taskpad add Buy milk
  taskpad add`,
		Action: cmd.runAdd,
	}
}

func (cmd *TaskCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "taskpad ls [--all|--done]",
		Description: `Lists tasks as JSON lines, newest first.

Defaults to open tasks. Use --all for everything, --done for
completed tasks only.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "include completed tasks",
				Destination: &cmd.listAll,
			},
			&cli.BoolFlag{
				Name:        "done",
				Usage:       "only completed tasks",
				Destination: &cmd.listDone,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *TaskCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace a task's text",
		UsageText: "taskpad edit <id> <text...>",
		Action:    cmd.runEdit,
	}
}

func (cmd *TaskCmd) toggleCmd() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"done"},
		Usage:     "Toggle a task's completion state",
		UsageText: "taskpad toggle <id>",
		Action:    cmd.runToggle,
	}
}

func (cmd *TaskCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		UsageText: "taskpad rm <id>",
		Action:    cmd.runRemove,
	}
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")

	if strings.TrimSpace(text) == "" {
		if err := cmd.promptText(&text); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("prompt: %w", err)
		}
	}

	created, err := cmd.app.Tasks.Create(text)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, created.ID)
	return nil
}

func (cmd *TaskCmd) runList(ctx context.Context, c *cli.Command) error {
	for _, t := range cmd.app.Tasks.Tasks() {
		if !cmd.listAll {
			if cmd.listDone != t.Completed {
				continue
			}
		}
		if err := iojson.WriteLine(c.Root().Writer, t); err != nil {
			return err
		}
	}

	return nil
}

func (cmd *TaskCmd) runEdit(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: taskpad edit <id> <text...>")
	}

	id := c.Args().Get(0)
	text := strings.Join(c.Args().Slice()[1:], " ")

	if err := cmd.app.Tasks.Edit(id, text); err != nil {
		return fmt.Errorf("edit task: %w", err)
	}

	return nil
}

func (cmd *TaskCmd) runToggle(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskpad toggle <id>")
	}

	cmd.app.Tasks.Toggle(c.Args().Get(0))
	return nil
}

func (cmd *TaskCmd) runRemove(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskpad rm <id>")
	}

	cmd.app.Tasks.Delete(c.Args().Get(0))
	return nil
}

// promptText asks for task text interactively.
func (cmd *TaskCmd) promptText(text *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				CharLimit(cmd.app.Config.Tasks.MaxTextLength).
				Validate(validateText).
				Value(text),
		),
	).Run()
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return task.ErrEmptyText
	}
	return nil
}
