package pulumi_aws

import (
	"gopkg.in/yaml.v3"
)

type buildspecPhase struct {
	Commands []string `yaml:"commands"`
}

type buildspecPhases struct {
	Install *buildspecPhase `yaml:"install,omitempty"`
	Build   buildspecPhase  `yaml:"build"`
}

type buildspecArtifacts struct {
	BaseDirectory string   `yaml:"base-directory"`
	Files         []string `yaml:"files"`
}

type buildspecDoc struct {
	Version   string             `yaml:"version"`
	Phases    buildspecPhases    `yaml:"phases"`
	Artifacts buildspecArtifacts `yaml:"artifacts"`
}

// RenderBuildspec produces the build runner's phase document. Rendering is a
// pure function of its inputs so repeated synthesis emits identical bytes.
func RenderBuildspec(install, build []string, outputDir string) (string, error) {
	doc := buildspecDoc{
		Version: "0.2",
		Phases: buildspecPhases{
			Build: buildspecPhase{Commands: build},
		},
		Artifacts: buildspecArtifacts{
			BaseDirectory: outputDir,
			Files:         []string{"**/*"},
		},
	}
	if len(install) > 0 {
		doc.Phases.Install = &buildspecPhase{Commands: install}
	}

	b, err := yaml.Marshal(&doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
