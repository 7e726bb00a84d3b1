package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/pontaoski/tempo/target"
)

const moduleFile = "tempo.yaml"

// tempoModule is the optional per-directory configuration file.
type tempoModule struct {
	Package string `yaml:"Package"`
	Symbol  string `yaml:"Symbol,omitempty"`
	Target  string `yaml:"Target,omitempty"`
	Clang   string `yaml:"Clang,omitempty"`
	Output  string `yaml:"Output,omitempty"`
}

// loadModule reads path. A missing file is not an error unless required.
func loadModule(path string, required bool) (tempoModule, error) {
	var doc tempoModule

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return doc, nil
		}
		return doc, fmt.Errorf("error reading %s: %w", path, err)
	}

	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return doc, fmt.Errorf("error reading %s: %w", path, err)
	}
	return doc, nil
}

func writeModule(path string, doc tempoModule) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := ioutil.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	return nil
}

// settings turns the file into compiler settings; a non-empty triple
// overrides the file's Target.
func (doc tempoModule) settings(triple string) (settings, error) {
	s := settings{
		symbol: doc.Symbol,
		clang:  doc.Clang,
	}
	if s.symbol == "" {
		s.symbol = defaultSymbol
	}
	if s.clang == "" {
		s.clang = "clang"
	}

	if triple == "" {
		triple = doc.Target
	}
	var err error
	if triple == "" {
		s.target, err = target.Native()
	} else {
		s.target, err = target.Lookup(triple)
	}
	if err != nil {
		return settings{}, err
	}
	return s, nil
}
