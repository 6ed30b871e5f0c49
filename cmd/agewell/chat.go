// ABOUTME: CLI command for the nutrition assistant.
// ABOUTME: Answers one question, or runs an interactive loop without arguments.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/agewell/internal/assistant"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the nutrition assistant",
	Long: `Ask the nutrition assistant a question.

With a question, prints one answer. Without one, starts a
conversation; type 'exit' or press Ctrl-D to leave.

EXAMPLES:

  agewell chat "How much protein should I eat daily?"
  agewell chat`,
	Annotations: map[string]string{lazyStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) > 0 {
			reply, err := assistant.NewConversation().Send(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply.Text)
			return nil
		}
		return chatLoop(cmd.InOrStdin(), out)
	},
}

func chatLoop(in io.Reader, out io.Writer) error {
	conv := assistant.NewConversation()
	bot := color.New(color.FgCyan)

	bot.Fprintln(out, assistant.Greeting)
	fmt.Fprintln(out)
	fmt.Fprintln(out, faint.Sprint("Try asking:"))
	for _, q := range assistant.QuickQuestions {
		fmt.Fprintln(out, faint.Sprintf("  • %s", q))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "exit", "quit", "bye":
			return nil
		}

		reply, err := conv.Send(text)
		if errors.Is(err, assistant.ErrEmptyMessage) {
			continue
		}
		if err != nil {
			return err
		}
		bot.Fprintln(out, reply.Text)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
