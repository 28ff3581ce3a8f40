package wolf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-wolf/internal/config"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
)

// MapExt is the extension of map files in the maps directory.
const MapExt = ".map"

// secretIndex is the episode slot a secret elevator leads to.
const secretIndex = 9

// Episode is the ordered list of levels a run plays through. An empty path
// list plays the built-in demo level.
type Episode struct {
	Paths []string
	Start int // Index of the first level played
}

// ErrNoMaps is returned when a maps directory holds no map files.
var ErrNoMaps = errors.New("wolf: no map files found")

// LoadEpisode resolves the maps configuration. An empty start selects the
// demo. Otherwise the directory is listed, ordered by cfg.Order or by file
// name, and the episode begins at the start map.
func LoadEpisode(cfg config.MapsConfig) (*Episode, error) {
	if cfg.Start == "" {
		return &Episode{}, nil
	}
	paths, err := ListMaps(cfg.Dir)
	if err != nil {
		return nil, err
	}
	if len(cfg.Order) > 0 {
		paths, err = orderMaps(cfg.Dir, cfg.Order)
		if err != nil {
			return nil, err
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMaps, cfg.Dir)
	}

	ep := &Episode{Paths: paths}
	ep.Start = ep.Index(cfg.Start)
	if ep.Start < 0 {
		return nil, fmt.Errorf("wolf: start map %q is not in %s", cfg.Start, cfg.Dir)
	}
	return ep, nil
}

// ListMaps returns the map files in dir sorted by name.
func ListMaps(dir string) ([]string, error) {
	dir, err := config.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("wolf: read maps dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), MapExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

func orderMaps(dir string, order []string) ([]string, error) {
	dir, err := config.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(order))
	for _, name := range order {
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, name)
		}
		if filepath.Ext(p) == "" {
			p += MapExt
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("wolf: episode map %q: %w", name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Len returns the number of levels.
func (e *Episode) Len() int {
	if len(e.Paths) == 0 {
		return 1
	}
	return len(e.Paths)
}

// Demo reports whether the episode is the built-in level.
func (e *Episode) Demo() bool {
	return len(e.Paths) == 0
}

// Level decodes level i.
func (e *Episode) Level(i int) (*level.LevelData, error) {
	if e.Demo() {
		return DemoLevel()
	}
	if i < 0 || i >= len(e.Paths) {
		return nil, fmt.Errorf("wolf: level %d out of range", i)
	}
	return level.LoadMap(e.Paths[i])
}

// Index finds a level by file name, with or without extension, or by map
// name. It returns -1 when nothing matches.
func (e *Episode) Index(name string) int {
	if e.Demo() {
		if name == DemoName || name == "" {
			return 0
		}
		return -1
	}
	base := strings.TrimSuffix(filepath.Base(name), MapExt)
	for i, p := range e.Paths {
		if strings.TrimSuffix(filepath.Base(p), MapExt) == base {
			return i
		}
	}
	return -1
}

// Next returns the level after cur for the way the level ended, and false
// when the episode is over. With ten or more maps, slot 9 is the secret
// level: only a secret elevator leads there, and leaving it resumes after
// from, the level whose elevator was taken.
func (e *Episode) Next(cur, from int, secret bool) (int, bool) {
	hasSecret := e.Len() > secretIndex
	switch {
	case secret && hasSecret && cur != secretIndex:
		return secretIndex, true
	case cur == secretIndex && from >= 0:
		cur = from
	}
	next := cur + 1
	if next >= e.Len() || (hasSecret && next == secretIndex) {
		return 0, false
	}
	return next, true
}

// Find returns the index of the level whose embedded map name is mapName,
// or -1. Unreadable files are skipped.
func (e *Episode) Find(mapName string) int {
	if e.Demo() {
		if mapName == DemoName {
			return 0
		}
		return -1
	}
	for i, p := range e.Paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if m, err := level.Unpack(data); err == nil && m.Name == mapName {
			return i
		}
	}
	return -1
}
