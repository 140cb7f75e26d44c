// Package setup updates the ct configuration file.
package setup

import (
	"github.com/apex/log"
	"github.com/manifoldco/promptui"

	"github.com/ctemplate/ct/cli/config"
	"github.com/ctemplate/ct/cli/configure"
)

// Setting is a single configuration value to store.
type Setting struct {
	Key   string
	Value string
}

// PromptFunc asks the user for a value. defaultValue is used if the user enters nothing.
type PromptFunc func(label string, defaultValue string) (string, error)

// TerminalPrompt asks for a value in terminal.
func TerminalPrompt(label string, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   defaultValue,
		AllowEdit: true,
	}
	return prompt.Run()
}

// Interactive asks for every configuration value, suggesting the current one.
func Interactive(current *config.CliOpts, prompt PromptFunc) ([]Setting, error) {
	if current == nil {
		current = &config.CliOpts{}
	}

	questions := []struct {
		key          string
		label        string
		defaultValue string
	}{
		{configure.TemplateDirectoryKey, "Template directory", current.TemplateDirectory},
		{configure.TemplateEditorKey, "Template editor", current.TemplateEditor},
	}

	settings := make([]Setting, 0, len(questions))
	for _, question := range questions {
		value, err := prompt(question.label, question.defaultValue)
		if err != nil {
			return nil, err
		}
		settings = append(settings, Setting{Key: question.key, Value: value})
	}
	return settings, nil
}

// Apply stores settings in the configuration file located at configPath. Other
// values of the file are kept.
func Apply(configPath string, settings []Setting) error {
	cliOpts, err := configure.Load(configPath)
	if err != nil {
		return err
	}

	for _, setting := range settings {
		if cliOpts, err = configure.Set(cliOpts, setting.Key, setting.Value); err != nil {
			return err
		}
		log.Debugf("Setting %s = %s", setting.Key, setting.Value)
	}

	if err := configure.Save(configPath, cliOpts); err != nil {
		return err
	}
	log.Infof("Configuration is saved to %s", configPath)
	return nil
}
