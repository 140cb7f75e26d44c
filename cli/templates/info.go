package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"

	"github.com/ctemplate/ct/cli/util"
)

const (
	// ContainerDirName is the template metadata directory name.
	ContainerDirName = ".ctemplate"
	// InfoFileName is the template metadata file name inside the container directory.
	InfoFileName = "info.yaml"
)

// Info is the template metadata stored in the container directory.
//
// info.yaml format:
//
//	description: text
//	prefix: "{{"
//	suffix: "}}"
//	vars:
//	  name: default value
//	exclude:
//	  - path/relative/to/template
type Info struct {
	// Description is a template description shown in the templates list.
	Description string `mapstructure:"description" yaml:"description,omitempty"`
	// Prefix is the default variable token prefix.
	Prefix string `mapstructure:"prefix" yaml:"prefix,omitempty"`
	// Suffix is the default variable token suffix.
	Suffix string `mapstructure:"suffix" yaml:"suffix,omitempty"`
	// Vars are default variable values.
	Vars map[string]string `mapstructure:"vars" yaml:"vars,omitempty"`
	// Exclude contains template-relative paths never copied to a project.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
}

// InfoPath returns the info file path of the template located at templatePath.
func InfoPath(templatePath string) string {
	return filepath.Join(templatePath, ContainerDirName, InfoFileName)
}

// ParseInfo decodes info file content.
func ParseInfo(data []byte) (Info, error) {
	var info Info
	raw, err := util.ParseYAMLBytes(data)
	if err != nil {
		return info, err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &info,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return info, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Info{}, fmt.Errorf("failed to decode template info: %s", err)
	}
	return info, nil
}

// LoadInfo loads the info file of the template located at templatePath.
// Missing info file results in an empty Info and false.
func LoadInfo(templatePath string) (Info, bool, error) {
	infoPath := InfoPath(templatePath)
	data, err := os.ReadFile(infoPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, false, nil
	} else if err != nil {
		return Info{}, false, fmt.Errorf("failed to read %s: %w", infoPath, err)
	}

	info, err := ParseInfo(data)
	if err != nil {
		return Info{}, false, fmt.Errorf("invalid template info %s: %w", infoPath, err)
	}
	return info, true, nil
}

// SaveInfo writes info to the container directory of the template located at templatePath.
func SaveInfo(templatePath string, info Info) error {
	containerDir := filepath.Join(templatePath, ContainerDirName)
	if err := util.CreateDirectory(containerDir, defaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create %s: %w", containerDir, err)
	}
	if err := util.WriteYaml(InfoPath(templatePath), info); err != nil {
		return fmt.Errorf("failed to save template info: %w", err)
	}
	return nil
}
