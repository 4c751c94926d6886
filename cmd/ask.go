package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/smartsupport/internal/chat"
	"github.com/ziadkadry99/smartsupport/internal/llm"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the support assistant a one-shot question",
	Long:  `Sends a single question to the assistant and prints the answer. Tools and retrieval behave exactly as they do on the HTTP chat endpoint.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Bool("tools", true, "let the assistant call tools")
	askCmd.Flags().Bool("rag", true, "ground answers in the knowledge base")
	askCmd.Flags().String("prompt", "", "system prompt key from the catalog")
	askCmd.Flags().Bool("json", false, "output the full response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	useTools, _ := cmd.Flags().GetBool("tools")
	useRAG, _ := cmd.Flags().GetBool("rag")
	promptKey, _ := cmd.Flags().GetString("prompt")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := buildStack()
	if err != nil {
		return err
	}

	resp, err := st.chat.Respond(ctx, &chat.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: question}},
		UseRAG:    &useRAG,
		UseTools:  useTools,
		PromptKey: promptKey,
	})
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Println(resp.Message)
	if len(resp.ToolCalls) > 0 {
		fmt.Println()
		for _, tc := range resp.ToolCalls {
			status := "ok"
			if !tc.Result.Success {
				status = "failed"
			}
			fmt.Printf("  [tool] %s: %s\n", tc.Tool, status)
		}
	}
	if len(resp.Sources) > 0 {
		fmt.Printf("\nSources: %s\n", strings.Join(resp.Sources, ", "))
	}
	return nil
}
