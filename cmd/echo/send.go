package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/cli"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers"
)

var sendFlags struct {
	file     string
	vars     []string
	provider string
	model    string
	raw      bool
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Render a template and submit it through a provider",
	Long: `Render an EPL template and send the result as a user message through
one of the configured completion providers, printing the model's reply.

Examples:
  # Send through the anthropic provider section of the config
  echo send --file prompt.epl --var name=World --provider anthropic

  # Override the model
  echo send --file prompt.epl --provider openai --model gpt-4o

  # Print only the reply text, no metadata
  echo send --file prompt.epl --provider openai --raw`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVarP(&sendFlags.file, "file", "f", "", "template file to render and send (required)")
	sendCmd.Flags().StringArrayVar(&sendFlags.vars, "var", nil, "variable binding key=value (repeatable)")
	sendCmd.Flags().StringVarP(&sendFlags.provider, "provider", "p", "", "provider name from the config (required)")
	sendCmd.Flags().StringVarP(&sendFlags.model, "model", "m", "", "model override")
	sendCmd.Flags().BoolVar(&sendFlags.raw, "raw", false, "print only the reply content")
	sendCmd.MarkFlagRequired("file")
	sendCmd.MarkFlagRequired("provider")
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	providerCfg, ok := cfg.Providers[sendFlags.provider]
	if !ok {
		return cli.NewConfigError("providers."+sendFlags.provider, "provider is not configured")
	}

	bindings, err := parseBindings(sendFlags.vars)
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()

	p, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	prompt, err := renderOnce(ctx, p, cfg, sendFlags.file, bindings)
	if err != nil {
		return err
	}

	provider, err := newProvider(sendFlags.provider, providerCfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	model := sendFlags.model
	if model == "" {
		model = cfg.Judge.Model
	}

	resp, err := provider.SendCompletion(ctx, &providers.CompletionRequest{
		Model: model,
		Messages: []providers.Message{
			{Role: providers.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		return cli.NewCommandError("send", err)
	}

	if sendFlags.raw {
		fmt.Println(resp.Content)
		return nil
	}

	fmt.Println(resp.Content)
	fmt.Fprintf(os.Stderr, "\nmodel=%s finish=%s tokens=%d (prompt %d, completion %d)\n",
		resp.Model, resp.FinishReason,
		resp.Usage.TotalTokens, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return nil
}
