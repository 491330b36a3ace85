package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima2d/engine/assets/loaders"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

var ErrManagerClosed = errors.New("asset manager already closed")

type AssetInfo struct {
	Path       string
	Kind       AssetKind
	LastLoaded time.Time
}

/**
 * @brief Indexes the asset and shader directories and, with hot reload on,
 * watches them. The watch goroutine only records changed paths; they are
 * turned into EVENT_CODE_ASSET_CHANGED events by DispatchChanges on the
 * thread that owns the renderer.
 */
type AssetManager struct {
	assets  map[string]AssetInfo
	pending map[string]struct{}

	mutex sync.RWMutex

	shaders  *loaders.ShaderLoader
	geometry *loaders.GeometryLoader
	dir      string

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	watching bool
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		pending:  make(map[string]struct{}),
		geometry: &loaders.GeometryLoader{},
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir, shaderDir string, hotReload bool) error {
	am.dir = assetsDir
	am.shaders = &loaders.ShaderLoader{Dir: shaderDir}

	for _, dir := range []string{assetsDir, shaderDir} {
		if _, err := os.Stat(dir); err != nil {
			core.LogWarn("asset directory %s not available: %s", dir, err)
			continue
		}
		if err := am.watchRecursive(dir, hotReload); err != nil {
			return err
		}
	}

	if hotReload {
		am.watching = true
		go am.start()
	}
	core.LogInfo("Asset manager indexed %d assets (hot reload: %t).", am.Len(), hotReload)
	return nil
}

// LoadShader reads <shaderDir>/<name>.vert.spv and <name>.frag.spv.
func (am *AssetManager) LoadShader(name string) (*metadata.ShaderSource, error) {
	if am.shaders == nil {
		return nil, fmt.Errorf("load shader %s: asset manager not initialized", name)
	}
	source, err := am.shaders.Load(name)
	if err != nil {
		return nil, err
	}
	am.touch(filepath.Join(am.shaders.Dir, name+loaders.VertexShaderSuffix))
	am.touch(filepath.Join(am.shaders.Dir, name+loaders.FragmentShaderSuffix))
	return source, nil
}

// LoadGeometry reads a geometry file relative to the asset directory.
func (am *AssetManager) LoadGeometry(name string) (*loaders.GeometryData, error) {
	path := filepath.Join(am.dir, name)
	data, err := am.geometry.Load(path)
	if err != nil {
		return nil, err
	}
	am.touch(path)
	return data, nil
}

func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// DispatchChanges fires one EVENT_CODE_ASSET_CHANGED per path changed since
// the last call, in path order, and returns how many were fired.
func (am *AssetManager) DispatchChanges() int {
	am.mutex.Lock()
	paths := make([]string, 0, len(am.pending))
	for p := range am.pending {
		paths = append(paths, p)
	}
	clear(am.pending)
	am.mutex.Unlock()

	slices.Sort(paths)
	for _, p := range paths {
		core.LogDebug("asset changed: %s", p)
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_ASSET_CHANGED,
			Data: &core.AssetEvent{Path: p},
		})
	}
	return len(paths)
}

func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return ErrManagerClosed
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	if am.watching {
		<-am.stopped
	}
	return am.fsnotify.Close()
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s.IsDir() {
				if e.Has(fsnotify.Create) {
					if err := am.watchRecursive(e.Name, true); err != nil {
						core.LogWarn("asset watcher: cannot watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			if e.Has(fsnotify.Create) || e.Has(fsnotify.Write) {
				if am.handleFileEvent(e.Name) {
					am.markChanged(e.Name)
				}
			}
			if e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename) {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			return
		}
	}
}

// watchRecursive indexes every known asset under path and, when watch is
// set, adds each directory to the watch list.
func (am *AssetManager) watchRecursive(path string, watch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watch {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// handleFileEvent records a created or modified file and reports whether
// it is an asset.
func (am *AssetManager) handleFileEvent(path string) bool {
	kind := determineAssetKind(path)
	if kind == AssetKindNone {
		return false
	}
	path = filepath.Clean(path)

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if _, ok := am.assets[path]; !ok {
		am.assets[path] = AssetInfo{Path: path, Kind: kind}
	}
	return true
}

func (am *AssetManager) markChanged(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.pending[filepath.Clean(path)] = struct{}{}
}

func (am *AssetManager) touch(path string) {
	path = filepath.Clean(path)
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{Path: path, Kind: determineAssetKind(path), LastLoaded: time.Now()}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}
