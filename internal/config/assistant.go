package config

import (
	"errors"
	"os"
)

// AssistantAgentName is the agent file consulted by LoadAssistantConfig.
const AssistantAgentName = "developer-assistant"

const (
	DefaultAssistantName  = "Developer Debugging Assistant"
	DefaultAssistantModel = "gpt-4.1-mini"

	DefaultAssistantInstructions = "You are a highly reliable developer assistant. " +
		"Always respond with a useful message. " +
		"NEVER leave a run incomplete. " +
		"If the user says anything, you must reply with a clear explanation."

	DefaultRunInstructions = "Always respond clearly. Never skip output."

	DefaultAssistantTemperature = 0.4
)

// DefaultAssistantConfig returns the built-in developer assistant persona.
func DefaultAssistantConfig() AgentConfig {
	temperature := DefaultAssistantTemperature
	return AgentConfig{
		Name:            DefaultAssistantName,
		Instructions:    DefaultAssistantInstructions,
		Model:           DefaultAssistantModel,
		Temperature:     &temperature,
		RunInstructions: DefaultRunInstructions,
	}
}

// LoadAssistantConfig returns the developer assistant persona. Fields set in
// the optional developer-assistant.yaml agent file override the defaults.
// A missing file is not an error; a malformed one is.
func LoadAssistantConfig() (AgentConfig, error) {
	cfg := DefaultAssistantConfig()

	override, err := LoadAgentConfig(AssistantAgentName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return AgentConfig{}, err
	}

	if override.Name != "" {
		cfg.Name = override.Name
	}
	if override.Instructions != "" {
		cfg.Instructions = override.Instructions
	}
	if override.Model != "" {
		cfg.Model = override.Model
	}
	if override.Temperature != nil {
		cfg.Temperature = override.Temperature
	}
	if override.RunInstructions != "" {
		cfg.RunInstructions = override.RunInstructions
	}
	return cfg, nil
}
