package configure

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/apex/log"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/ctemplate/ct/cli/cmdcontext"
	"github.com/ctemplate/ct/cli/config"
	"github.com/ctemplate/ct/cli/util"
)

const (
	ConfigName = "ct.yaml"
	// configEnvName is an environment variable that contains a path to ct config.
	configEnvName = "CT_CONFIG"
	// appDirName is a ct directory name inside XDG base directories.
	appDirName = "ct"
	// TemplatesDirName is a default templates directory name.
	TemplatesDirName = "templates"
)

// Config keys accepted by Set.
const (
	TemplateDirectoryKey = "template_directory"
	TemplateEditorKey    = "template_editor"
)

const defaultFilePermissions = os.FileMode(0644)

// Path to default ct.yaml configuration file.
// Defined at build time, see magefile.
var defaultConfigPath string

// GetDefaultCliOpts returns `CliOpts` filled with default values.
func GetDefaultCliOpts() *config.CliOpts {
	return &config.CliOpts{
		TemplateEditor: os.Getenv("EDITOR"),
	}
}

// adjustPathWithConfigLocation adjust provided filePath with configDir.
// Absolute filePath is returned as is. Relative filePath is calculated relative to configDir.
// If filePath is empty, defaultDirName is appended to configDir.
func adjustPathWithConfigLocation(filePath, configDir string,
	defaultDirName string,
) (string, error) {
	if filePath == "" {
		if defaultDirName == "" {
			return "", nil
		}
		return filepath.Abs(filepath.Join(configDir, defaultDirName))
	}
	if filepath.IsAbs(filePath) {
		return filePath, nil
	}
	return filepath.Abs(filepath.Join(configDir, filePath))
}

func decodeConfig(input map[string]any, cfg *config.Config) error {
	decoderConfig := mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(&decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Parse decodes ct configuration file content. Paths are returned as they are
// stored in the file.
func Parse(data []byte) (*config.CliOpts, error) {
	rawConfigOpts, err := util.ParseYAMLBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ct configuration: %s", err)
	}

	cfg := config.Config{CliConfig: GetDefaultCliOpts()}
	if err := decodeConfig(rawConfigOpts, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ct configuration: %s", err)
	}
	if cfg.CliConfig == nil {
		cfg.CliConfig = GetDefaultCliOpts()
	}

	return cfg.CliConfig, nil
}

// Marshal encodes cliOpts to the configuration file content.
func Marshal(cliOpts *config.CliOpts) ([]byte, error) {
	if cliOpts == nil {
		cliOpts = &config.CliOpts{}
	}
	data, err := yaml.Marshal(config.Config{CliConfig: cliOpts})
	if err != nil {
		return nil, fmt.Errorf("failed to encode ct configuration: %s", err)
	}
	return data, nil
}

// Load reads configuration file located at configPath. Missing file results in
// default options.
func Load(configPath string) (*config.CliOpts, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("Configuration file %q does not exist, using defaults", configPath)
		return GetDefaultCliOpts(), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %s", err)
	}
	return Parse(data)
}

// Save writes cliOpts to configPath, creating missing parent directories.
func Save(configPath string, cliOpts *config.CliOpts) error {
	data, err := Marshal(cliOpts)
	if err != nil {
		return err
	}
	if err := util.CreateDirectory(filepath.Dir(configPath), os.FileMode(0755)); err != nil {
		return fmt.Errorf("failed to create configuration directory: %s", err)
	}
	if err := os.WriteFile(configPath, data, defaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write configuration file: %s", err)
	}
	return nil
}

// Set returns a copy of cliOpts with key set to value.
func Set(cliOpts *config.CliOpts, key, value string) (*config.CliOpts, error) {
	updated := config.CliOpts{}
	if cliOpts != nil {
		updated = *cliOpts
	}

	switch key {
	case TemplateDirectoryKey:
		updated.TemplateDirectory = value
	case TemplateEditorKey:
		updated.TemplateEditor = value
	default:
		return nil, fmt.Errorf("unknown configuration key %q", key)
	}
	return &updated, nil
}

// Resolve returns a copy of cliOpts with paths resolved against configDir.
// With empty configDir the templates directory defaults to the XDG data directory.
func Resolve(cliOpts *config.CliOpts, configDir string) (*config.CliOpts, error) {
	resolved := *cliOpts
	if configDir == "" {
		if resolved.TemplateDirectory == "" {
			resolved.TemplateDirectory = DefaultTemplatesDir()
			return &resolved, nil
		}
		var err error
		if resolved.TemplateDirectory, err = filepath.Abs(resolved.TemplateDirectory); err != nil {
			return nil, err
		}
		return &resolved, nil
	}

	var err error
	if resolved.TemplateDirectory, err = adjustPathWithConfigLocation(
		resolved.TemplateDirectory, configDir, TemplatesDirName); err != nil {
		return nil, err
	}
	return &resolved, nil
}

// DefaultTemplatesDir returns the templates directory used without configuration file.
func DefaultTemplatesDir() string {
	return filepath.Join(xdg.DataHome, appDirName, TemplatesDirName)
}

// DefaultConfigPath returns the user configuration file path. New configuration
// is saved there if no configuration file is found.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, ConfigName)
}

// GetCliOpts returns ct options from the config file located at configPath.
// Empty configPath results in default options.
func GetCliOpts(configPath string) (*config.CliOpts, error) {
	if configPath == "" {
		return Resolve(GetDefaultCliOpts(), "")
	}

	cliOpts, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	configDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, err
	}
	return Resolve(cliOpts, configDir)
}

// Cli detects the configuration file path and fills the CLI context.
func Cli(cmdCtx *cmdcontext.CmdCtx) error {
	var err error
	if cmdCtx.Cli.ConfigPath == "" {
		cmdCtx.Cli.ConfigPath = os.Getenv(configEnvName)
	}
	if cmdCtx.Cli.ConfigPath == "" {
		if cmdCtx.Cli.ConfigPath, err = getConfigPath(ConfigName); err != nil {
			return fmt.Errorf("failed to get ct config: %s", err)
		}
	}
	if cmdCtx.Cli.ConfigPath == "" {
		cmdCtx.Cli.ConfigPath = getUserConfigPath()
	}

	if cmdCtx.Cli.ConfigPath == "" {
		cmdCtx.Cli.ConfigDir = ""
		return nil
	}

	if cmdCtx.Cli.ConfigPath, err = filepath.Abs(cmdCtx.Cli.ConfigPath); err != nil {
		return fmt.Errorf("cannot determine config file path: %s", err)
	}
	cmdCtx.Cli.ConfigDir = filepath.Dir(cmdCtx.Cli.ConfigPath)
	log.Debugf("Using configuration file %q", cmdCtx.Cli.ConfigPath)

	return nil
}

// getUserConfigPath returns an existing configuration file from the XDG config
// directory or the build time default.
func getUserConfigPath() string {
	candidates := []string{DefaultConfigPath()}
	if defaultConfigPath != "" {
		candidates = append(candidates, filepath.Join(defaultConfigPath, ConfigName))
	}
	for _, configPath := range candidates {
		if util.IsRegularFile(configPath) {
			return configPath
		}
	}
	return ""
}

// getConfigPath looks for the path to the ct.yaml configuration file,
// looking through all directories from the current one to the root.
func getConfigPath(configName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to detect current directory: %s", err)
	}

	for {
		configPath := filepath.Join(curDir, configName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}

		parentDir := filepath.Dir(curDir)
		if parentDir == curDir {
			break
		}
		curDir = parentDir
	}

	return "", nil
}
