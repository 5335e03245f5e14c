package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchConfig describes a batch run: a list of generation jobs plus the
// number of jobs allowed to run at once.
type BatchConfig struct {
	Concurrency int
	Jobs        []Config
}

// batchFile is the raw YAML shape. Jobs are kept as nodes so each one
// can be decoded on top of its own copy of the defaults.
type batchFile struct {
	Concurrency int         `yaml:"concurrency"`
	Defaults    yaml.Node   `yaml:"defaults"`
	Jobs        []yaml.Node `yaml:"jobs"`
}

// LoadBatchFromFile loads a batch description from a YAML file. Each job
// starts from the built-in defaults, overlaid with the file's optional
// `defaults` section, then with the job's own fields.
func LoadBatchFromFile(path string) (BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BatchConfig{}, err
	}

	var raw batchFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return BatchConfig{}, err
	}

	base := Defaults()
	if raw.Defaults.Kind != 0 {
		if err := raw.Defaults.Decode(&base); err != nil {
			return BatchConfig{}, fmt.Errorf("batch defaults: %w", err)
		}
	}

	batch := BatchConfig{Concurrency: raw.Concurrency}
	if batch.Concurrency < 1 {
		batch.Concurrency = 1
	}

	for i, node := range raw.Jobs {
		job := base
		if err := node.Decode(&job); err != nil {
			return BatchConfig{}, fmt.Errorf("batch job %d: %w", i, err)
		}
		if job.InputPath == "" {
			return BatchConfig{}, fmt.Errorf("batch job %d: missing input", i)
		}
		if job.OutputPath == "" {
			return BatchConfig{}, fmt.Errorf("batch job %d: missing output", i)
		}
		batch.Jobs = append(batch.Jobs, job)
	}

	if len(batch.Jobs) == 0 {
		return BatchConfig{}, fmt.Errorf("batch file %s has no jobs", path)
	}

	return batch, nil
}
