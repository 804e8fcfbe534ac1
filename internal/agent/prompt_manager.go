package agent

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/rahul/alfred/internal/tools"
	"go.uber.org/zap"
)

//go:embed prompts/*.md
var defaultPrompts embed.FS

// promptOrder fixes the position of the known prompt files; any other
// markdown file follows in name order.
var promptOrder = map[string]int{
	"identity.md":    1,
	"workflow.md":    2,
	"format.md":      3,
	"personality.md": 4,
}

type PromptManager struct {
	Directory string
	log       *zap.Logger
}

// NewPromptManager reads prompts from dir. Unreadable files are skipped and
// reported to log, which may be nil.
func NewPromptManager(dir string, log *zap.Logger) *PromptManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &PromptManager{Directory: dir, log: log}
}

// GetSystemPrompt joins the markdown files of the prompts directory. When
// the directory is missing or holds no markdown, the built-in prompt is used.
func (pm *PromptManager) GetSystemPrompt() (string, error) {
	if pm.Directory != "" {
		prompt, err := pm.readPrompts(os.DirFS(pm.Directory))
		if err == nil {
			return prompt, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, errNoPrompts) {
			return "", fmt.Errorf("failed to read prompts directory: %w", err)
		}
	}
	sub, err := fs.Sub(defaultPrompts, "prompts")
	if err != nil {
		return "", err
	}
	return pm.readPrompts(sub)
}

// BuildSystemPrompt appends the registered tools to the system prompt.
func (pm *PromptManager) BuildSystemPrompt(registry *tools.Registry) (string, error) {
	prompt, err := pm.GetSystemPrompt()
	if err != nil {
		return "", err
	}

	var toolDescriptions []string
	for _, t := range registry.List() {
		toolDescriptions = append(toolDescriptions, fmt.Sprintf("- %s: %s", t.Name(), t.Description()))
	}
	return fmt.Sprintf("%s\n\n---\n\n# Available Tools\n%s", prompt, strings.Join(toolDescriptions, "\n")), nil
}

var errNoPrompts = errors.New("no prompt files found")

func (pm *PromptManager) readPrompts(fsys fs.FS) (string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", err
	}

	sort.Slice(entries, func(i, j int) bool {
		oi, okI := promptOrder[entries[i].Name()]
		oj, okJ := promptOrder[entries[j].Name()]
		if okI && okJ {
			return oi < oj
		}
		if okI {
			return true
		}
		if okJ {
			return false
		}
		return entries[i].Name() < entries[j].Name()
	})

	var contents []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			pm.log.Warn("skipping prompt file", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		contents = append(contents, strings.TrimSpace(string(data)))
	}

	if len(contents) == 0 {
		return "", errNoPrompts
	}
	return strings.Join(contents, "\n\n---\n\n"), nil
}
