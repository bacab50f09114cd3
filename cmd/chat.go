package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/theapemachine/hybrid-travel/pkg/rag"
	"github.com/theapemachine/hybrid-travel/pkg/ui"
)

var (
	plainFlag bool

	chatCmd = &cobra.Command{
		Use:   "chat",
		Short: "Ask travel questions in the terminal",
		Long:  longChat,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			deps, err := newComponents(ctx)
			if err != nil {
				return err
			}
			defer deps.Close(context.Background())

			if plainFlag {
				return plainChat(ctx, deps.assistant)
			}

			_, err = tea.NewProgram(ui.New(ctx, deps.assistant), tea.WithAltScreen()).Run()

			return err
		},
	}
)

// plainChat reads one question per line until a blank line, exit or quit.
func plainChat(ctx context.Context, assistant *rag.Assistant) error {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Hybrid travel assistant. Type 'exit' to quit.")

	for {
		fmt.Print(ui.UserStyle.Render("\nEnter your travel question: "))

		if !scanner.Scan() {
			return scanner.Err()
		}

		question := scanner.Text()
		if ui.IsExit(question) {
			return nil
		}

		answer, err := assistant.Answer(ctx, question)
		if err != nil {
			fmt.Println(ui.ErrorStyle.Render("Error: ") + err.Error())
			continue
		}

		fmt.Println(ui.AssistantStyle.Render("\n=== Assistant Answer ===\n"))
		fmt.Println(answer.Response)
		fmt.Println(ui.StatusStyle.Render(ui.Sources(answer)))
		fmt.Println("\n=== End ===")
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().BoolVar(&plainFlag, "plain", false, "Read questions line by line instead of the full-screen UI")
}

var longChat = `
Ask travel questions in the terminal. Leave with exit, quit or an empty
question.

Examples:
  hybrid-travel chat
  echo "best street food in Hanoi" | hybrid-travel chat --plain
`
