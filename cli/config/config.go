package config

// Config used to store all information from the
// ct.yaml configuration file.
type Config struct {
	CliConfig *CliOpts `mapstructure:"ct" yaml:"ct"`
}

// CliOpts stores ct configuration.
// Filled in when parsing the ct.yaml configuration file.
//
// ct.yaml file format:
// ct:
//   template_directory: path
//   template_editor: command
type CliOpts struct {
	// TemplateDirectory is a directory where templates are stored. A relative
	// path is resolved against the configuration file directory.
	TemplateDirectory string `mapstructure:"template_directory" yaml:"template_directory,omitempty"`
	// TemplateEditor is a command used to open a template for editing.
	TemplateEditor string `mapstructure:"template_editor" yaml:"template_editor,omitempty"`
}
