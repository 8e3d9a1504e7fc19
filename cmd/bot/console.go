package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/avdeev87/fitcoach/internal/bot"
	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/model"
)

var (
	promptColor   = color.New(color.FgCyan)
	optionColor   = color.New(color.FgYellow)
	reminderColor = color.New(color.FgMagenta, color.Bold)
)

// console is a stdin/stdout chat transport for one user. It also
// receives scheduler reminders, so output is serialized on a mutex.
type console struct {
	router *bot.Router
	userID model.UserID

	mu sync.Mutex
}

func newConsole(router *bot.Router, userID string) *console {
	return &console{router: router, userID: model.UserID(userID)}
}

// Notify prints a reminder between chat turns.
func (c *console) Notify(ctx context.Context, userID model.UserID, text string) error {
	if userID != c.userID {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	reminderColor.Printf("\n[reminder] %s\n> ", text)
	return nil
}

// Run reads lines until EOF or cancellation. A line of the form
// "photo <path>" is sent as a photo event with the file's bytes.
func (c *console) Run(ctx context.Context) error {
	c.render(c.router.HandleMessage(ctx, c.userID, dialog.Input{Text: "menu"}))

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			c.render(c.router.HandleMessage(ctx, c.userID, c.toInput(line)))
		}
	}
}

func (c *console) toInput(line string) dialog.Input {
	if path, ok := strings.CutPrefix(line, "photo "); ok {
		data, err := os.ReadFile(strings.TrimSpace(path))
		if err != nil {
			fmt.Printf("could not read %s: %v\n", path, err)
			return dialog.Input{}
		}
		return dialog.Input{Photo: data}
	}
	return dialog.Input{Text: line}
}

func (c *console) render(resp bot.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range resp.Messages {
		fmt.Println(m)
	}
	if resp.Prompt != nil {
		promptColor.Println(resp.Prompt.Text)
		if len(resp.Prompt.Options) > 0 {
			optionColor.Printf("  [%s]\n", strings.Join(resp.Prompt.Options, " | "))
		}
	}
}
