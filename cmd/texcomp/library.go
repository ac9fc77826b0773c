package main

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/texcomp/internal/asset"
	"github.com/Faultbox/texcomp/internal/logger"
	"github.com/Faultbox/texcomp/internal/selector"
)

// item is one loaded file in the sidebar.
type item struct {
	path  string
	asset asset.Asset
}

// library owns the loaded assets and the sidebar selection.
type library struct {
	list     selector.List[*item]
	load     func(string) (asset.Asset, error)
	uploader asset.TextureUploader
}

func newLibrary(up asset.TextureUploader) *library {
	return &library{load: asset.Load, uploader: up}
}

// open loads path and selects it. A path that is already loaded is only
// selected again.
func (l *library) open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if i := l.find(abs); i >= 0 {
		l.list.Select(i)
		return nil
	}
	a, err := l.load(abs)
	if err != nil {
		logger.Warn("cannot open asset", zap.String("path", abs), zap.Error(err))
		return err
	}
	l.list.Add(&item{path: abs, asset: a})
	logger.Info("asset opened", zap.String("asset", a.Name()), zap.Stringer("kind", a.Kind()))
	return nil
}

func (l *library) find(path string) int {
	for i, it := range l.list.Items() {
		if it.path == path {
			return i
		}
	}
	return -1
}

// remove drops the item at i and frees its textures.
func (l *library) remove(i int) {
	it, ok := l.list.Remove(i)
	if !ok {
		return
	}
	if img, ok := it.asset.(*asset.Image); ok && l.uploader != nil {
		img.Release(l.uploader)
	}
	logger.Info("asset closed", zap.String("asset", it.asset.Name()))
}

// selected returns the current asset, if any.
func (l *library) selected() asset.Asset {
	if it, ok := l.list.Selected(); ok {
		return it.asset
	}
	return nil
}

// releaseAll frees every texture.
func (l *library) releaseAll() {
	for l.list.Len() > 0 {
		l.remove(l.list.Len() - 1)
	}
}
