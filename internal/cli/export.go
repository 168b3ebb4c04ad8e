package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/idilsaglam/tasks/internal/model"
	"gopkg.in/yaml.v3"
)

func writeJSON(w io.Writer, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// yamlTask mirrors the on-disk record; unknown members are inlined.
type yamlTask struct {
	ID          int            `yaml:"id"`
	Title       string         `yaml:"title"`
	Done        bool           `yaml:"done"`
	CreatedAt   string         `yaml:"created_at,omitempty"`
	CompletedAt string         `yaml:"completed_at,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

func writeYAML(w io.Writer, tasks []model.Task) error {
	out := make([]yamlTask, 0, len(tasks))
	for _, t := range tasks {
		yt := yamlTask{
			ID:          t.ID,
			Title:       t.Title,
			Done:        t.Done,
			CreatedAt:   t.CreatedAt.String(),
			CompletedAt: t.CompletedAt.String(),
		}
		for k, raw := range t.Extra {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			if yt.Extra == nil {
				yt.Extra = make(map[string]any, len(t.Extra))
			}
			yt.Extra[k] = v
		}
		out = append(out, yt)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return enc.Close()
}
