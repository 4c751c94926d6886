package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to smartsupport! Let's configure your assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	modelPrompt := promptui.Select{
		Label: "Select chat model",
		Items: []string{"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini", "gpt-4.1"},
	}
	_, model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model selection: %w", err)
	}
	cfg.Model = model

	embeddingPrompt := promptui.Select{
		Label: "Select embedding model",
		Items: []string{"text-embedding-3-small", "text-embedding-3-large"},
	}
	_, embedding, err := embeddingPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding selection: %w", err)
	}
	cfg.EmbeddingModel = embedding

	knowledgePrompt := promptui.Prompt{
		Label:   "Knowledge directory to watch for documents (empty to disable)",
		Default: "",
	}
	knowledgeDir, err := knowledgePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("knowledge dir: %w", err)
	}
	cfg.KnowledgeDir = knowledgeDir

	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the vector index",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	smtpPrompt := promptui.Prompt{
		Label:     "Configure SMTP for confirmation emails",
		IsConfirm: true,
	}
	if _, err := smtpPrompt.Run(); err == nil {
		hostPrompt := promptui.Prompt{Label: "SMTP host"}
		if cfg.SMTP.Host, err = hostPrompt.Run(); err != nil {
			return nil, fmt.Errorf("smtp host: %w", err)
		}
		userPrompt := promptui.Prompt{Label: "SMTP username"}
		if cfg.SMTP.Username, err = userPrompt.Run(); err != nil {
			return nil, fmt.Errorf("smtp username: %w", err)
		}
		passPrompt := promptui.Prompt{Label: "SMTP password", Mask: '*'}
		if cfg.SMTP.Password, err = passPrompt.Run(); err != nil {
			return nil, fmt.Errorf("smtp password: %w", err)
		}
		fromPrompt := promptui.Prompt{Label: "From address", Default: cfg.SMTP.Username}
		if cfg.SMTP.From, err = fromPrompt.Run(); err != nil {
			return nil, fmt.Errorf("smtp from: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("Configuration written to %s\n", path)
	fmt.Println("Set OPENAI_API_KEY in your environment before starting the server.")

	return cfg, nil
}
