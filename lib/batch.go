package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	ModePair     = "pair"
	ModeControl  = "control"
	ModeSequence = "sequence"
)

/*
	jobs:
	  - name: lot42
	    mode: sequence
	    inputs: [pass1.g85, pass2.g85, pass3.g85]
	    output: lot42.g85
	    export: true
*/
type Job struct {
	Name           string   `yaml:"name"`
	Mode           string   `yaml:"mode"`
	Inputs         []string `yaml:"inputs"`
	Output         string   `yaml:"output"`
	Export         bool     `yaml:"export"`
	FirstIsControl bool     `yaml:"first_is_control"`
}

type Manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadManifest reads a job manifest. Relative paths are taken relative to
// the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	for i := range manifest.Jobs {
		job := &manifest.Jobs[i]
		if job.Mode == "" {
			job.Mode = ModeSequence
		}
		if job.Name == "" {
			job.Name = fmt.Sprintf("job%d", i+1)
		}
		for j := range job.Inputs {
			job.Inputs[j] = resolve(job.Inputs[j])
		}
		job.Output = resolve(job.Output)
	}

	return manifest, nil
}

// Run merges the job's inputs and writes the output file when one is set.
func (j Job) Run(mg *Merger) (*Result, error) {
	maps, err := LoadMaps(j.Inputs)
	if err != nil {
		return nil, err
	}

	var r *Result
	switch j.Mode {
	case ModePair:
		if len(maps) != 2 {
			return nil, &InputError{Reason: fmt.Sprintf("pair merge takes 2 maps, got %d", len(maps))}
		}
		r, err = mg.MergeTwo(maps[0], maps[1])
	case ModeControl:
		if len(maps) != 2 {
			return nil, &InputError{Reason: fmt.Sprintf("control merge takes 2 maps, got %d", len(maps))}
		}
		r, err = mg.MergeControlAndScan(maps[0], maps[1], j.Export)
	case ModeSequence:
		r, err = mg.MergeSequence(maps, j.Export, j.FirstIsControl)
	default:
		return nil, &InputError{Reason: "unknown mode " + j.Mode}
	}
	if err != nil {
		return nil, err
	}

	if j.Output != "" {
		if err := WriteFile(j.Output, r.Map); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// RunJobs runs independent jobs with at most workers in flight. The first
// failure cancels jobs that have not started yet.
func RunJobs(ctx context.Context, jobs []Job, workers int, mg *Merger) ([]*Result, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := job.Run(mg)
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}

			mg.Logger.Info("job done",
				zap.String("job", job.Name),
				zap.String("output", job.Output),
				zap.Int("dies", len(r.Map.Dies)),
				zap.Int("dropped", r.Dropped),
			)

			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
