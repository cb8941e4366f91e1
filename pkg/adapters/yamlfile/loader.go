// Package yamlfile loads dialog trees from YAML documents in a directory,
// one conversation per file:
//
//	name: blacksmith
//	start: greet
//	nodes:
//	  - name: greet
//	    speaker: Brenna
//	    text: Well met, traveler.
//	    auto_advance: 1.5s
//	    next: offer
//	  - name: offer
//	    speaker: Brenna
//	    text: Looking for steel or gossip?
//	    choices:
//	      - text: Show me your wares.
//	        to: wares
//	        action: open_shop
//	      - text: Just passing through.
package yamlfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/fenwick-games/parley/internal/logging"
	"github.com/fenwick-games/parley/pkg/dialog"
)

// Loader implements ports.TreeLoader over a directory of YAML files.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{dir: dir, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadTree reads <dir>/<name>.yaml (or .yml) and builds the tree. Returns
// dialog.ErrTreeNotFound when no file exists for the name.
func (l *Loader) LoadTree(name string) (*dialog.Tree, error) {
	data, err := l.readFile(name)
	if err != nil {
		return nil, err
	}

	doc, err := decodeDoc(data)
	if err != nil {
		return nil, fmt.Errorf("tree %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}

	return buildTree(doc, l.logger)
}

// ListTrees returns the loadable tree names, sorted.
func (l *Loader) ListTrees() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (l *Loader) readFile(name string) ([]byte, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		data, err := os.ReadFile(filepath.Join(l.dir, name+ext))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read tree %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("tree %s: %w", name, dialog.ErrTreeNotFound)
}

// decodeDoc parses YAML into a generic map first, then runs mapstructure
// with a duration hook so "auto_advance: 1.5s" decodes directly.
func decodeDoc(data []byte) (*treeDoc, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var doc treeDoc
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// buildTree wires the document into a dialog.Tree. Next links must resolve
// within the document; choice targets stay name-based so Tree.Validate can
// surface dangling ones as warnings instead of hard failures.
func buildTree(doc *treeDoc, logger *slog.Logger) (*dialog.Tree, error) {
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("tree %s: no nodes", doc.Name)
	}

	tree := dialog.NewTree(doc.Name, dialog.WithTreeLogger(logger))
	built := make([]*dialog.Node, len(doc.Nodes))
	byName := make(map[string]*dialog.Node, len(doc.Nodes))

	for i, nd := range doc.Nodes {
		n := tree.NewNode(nd.Speaker, nd.Text)
		n.Name = nd.Name
		n.PlayerSpeaking = nd.Player
		n.AutoAdvance = nd.AutoAdvance
		built[i] = n
		if nd.Name != "" {
			// First declaration wins; duplicates surface via Validate.
			if _, dup := byName[nd.Name]; !dup {
				byName[nd.Name] = n
			}
		}
	}

	for i, nd := range doc.Nodes {
		n := built[i]
		if nd.Next != "" {
			target, ok := byName[nd.Next]
			if !ok {
				return nil, fmt.Errorf("tree %s: node %q continues to unknown node %q", doc.Name, nd.Name, nd.Next)
			}
			n.SetNext(target)
		}
		for _, cd := range nd.Choices {
			if cd.Text == "" {
				return nil, fmt.Errorf("tree %s: node %q has a choice without text", doc.Name, nd.Name)
			}
			c := n.AddChoice(cd.Text, cd.Action)
			if cd.To != "" {
				c.SetTargetByName(cd.To)
			}
		}
	}

	start := doc.Start
	if start == "" {
		start = doc.Nodes[0].Name
	}
	startNode := byName[start]
	if startNode == nil {
		return nil, fmt.Errorf("tree %s: starting node %q not found", doc.Name, start)
	}
	tree.SetStartingNode(startNode)
	tree.RefreshRegistry()

	return tree, nil
}
