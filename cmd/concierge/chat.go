package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/berryair/concierge"
	"github.com/berryair/concierge/internal/presentation/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat with the assistant",
	Long:  `Starts an interactive conversation on the terminal. Type "exit", "quit" or "bye" to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		bot, err := newBot(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		render := tui.NewRenderer()

		if tui.Interactive() {
			tui.PrintBanner()
		}
		fmt.Println(render(concierge.Greeting))

		scanner := bufio.NewScanner(os.Stdin)
		for {
			if tui.Interactive() {
				fmt.Print("> ")
			}
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			switch strings.ToLower(input) {
			case "exit", "quit", "bye":
				fmt.Println(render(concierge.Farewell))
				return
			}

			response, err := bot.SendMessage(cmd.Context(), sessionID, input)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Println(render(response))
		}

		if err := scanner.Err(); err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("session", "", "Session ID to resume (defaults to a fresh session)")

	// Make 'chat' the default if no command is provided.
	rootCmd.Run = chatCmd.Run
}
