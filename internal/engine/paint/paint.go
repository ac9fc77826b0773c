// Package paint runs deferred GPU paint callbacks for UI regions.
//
// Widgets register a Callback for a session during UI construction and get
// back the texture to display. After the UI is built the host calls Flush,
// which runs each callback's Prepare (resource creation and uploads) and then
// its Paint (draw commands) into the session's offscreen render target.
package paint

import (
	"errors"
	"fmt"
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/texcomp/internal/engine/gpu"
	"github.com/Faultbox/texcomp/internal/logger"
	"github.com/Faultbox/texcomp/pkg/math"
)

// SessionID identifies one viewport and its resource cache.
type SessionID uint64

// Context is what Prepare may use.
type Context struct {
	Device gpu.Device
	Queue  gpu.Queue
	// Width and Height of the render target in pixels.
	Width, Height int
}

// Aspect returns width over height.
func (c Context) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Callback paints one region. Prepare always runs before Paint within a
// flush, and Paint is skipped when Prepare fails.
type Callback interface {
	Prepare(ctx Context, res *Resources) error
	Paint(pass gpu.RenderPass, res *Resources)
}

type session struct {
	target gpu.RenderTarget
	res    *Resources
	err    error
}

type request struct {
	id SessionID
	cb Callback
}

// Host owns render targets and resource caches per session.
type Host struct {
	dev      gpu.Device
	clear    [4]float32
	sessions map[SessionID]*session
	pending  []request
	log      *zap.Logger
}

// NewHost creates a host drawing with dev. Targets are cleared to clear.
func NewHost(dev gpu.Device, clear [4]float32) *Host {
	return &Host{
		dev:      dev,
		clear:    clear,
		sessions: make(map[SessionID]*session),
		log:      logger.Named("paint"),
	}
}

// SetClearColor changes the background of every target.
func (h *Host) SetClearColor(c [4]float32) { h.clear = c }

// Add schedules cb to paint session id into a target the size of region and
// returns the texture to display. It returns false when the region is empty
// or the session has failed; Err reports the failure.
func (h *Host) Add(id SessionID, region math.Rect, cb Callback) (uint64, bool) {
	w := int(stdmath.Round(float64(region.Width())))
	ht := int(stdmath.Round(float64(region.Height())))
	if w <= 0 || ht <= 0 {
		return 0, false
	}
	s := h.session(id)
	if s.err != nil {
		return 0, false
	}
	if s.target == nil {
		t, err := h.dev.CreateRenderTarget(w, ht)
		if err != nil {
			h.fail(id, s, fmt.Errorf("render target: %w", err))
			return 0, false
		}
		s.target = t
	} else {
		s.target.Resize(w, ht)
	}
	h.pending = append(h.pending, request{id: id, cb: cb})
	return s.target.TextureID(), true
}

func (h *Host) session(id SessionID) *session {
	s, ok := h.sessions[id]
	if !ok {
		s = &session{res: NewResources()}
		h.sessions[id] = s
	}
	return s
}

func (h *Host) fail(id SessionID, s *session, err error) {
	s.err = err
	h.log.Error("paint session failed", zap.Uint64("session", uint64(id)), zap.Error(err))
}

// Flush runs every callback registered since the last flush, in
// registration order, and returns the joined errors of failed prepares.
func (h *Host) Flush() error {
	var errs []error
	for _, r := range h.pending {
		s := h.sessions[r.id]
		if s == nil || s.err != nil || s.target == nil {
			continue
		}
		w, ht := s.target.Size()
		ctx := Context{Device: h.dev, Queue: h.dev.Queue(), Width: w, Height: ht}
		if err := r.cb.Prepare(ctx, s.res); err != nil {
			h.fail(r.id, s, err)
			errs = append(errs, fmt.Errorf("session %d: %w", r.id, err))
			continue
		}
		pass := s.target.Begin(h.clear)
		r.cb.Paint(pass, s.res)
		pass.End()
	}
	h.pending = h.pending[:0]
	return errors.Join(errs...)
}

// Err returns the error that failed session id, if any.
func (h *Host) Err(id SessionID) error {
	if s, ok := h.sessions[id]; ok {
		return s.err
	}
	return nil
}

// Target returns the render target of session id.
func (h *Host) Target(id SessionID) (gpu.RenderTarget, bool) {
	s, ok := h.sessions[id]
	if !ok || s.target == nil {
		return nil, false
	}
	return s.target, true
}

// Reset clears the failure and the cached resources of session id so the
// next frame starts from scratch. The render target is kept.
func (h *Host) Reset(id SessionID) {
	if s, ok := h.sessions[id]; ok {
		s.res.Clear()
		s.err = nil
	}
}

// Release destroys everything owned by session id.
func (h *Host) Release(id SessionID) {
	s, ok := h.sessions[id]
	if !ok {
		return
	}
	s.res.Clear()
	if s.target != nil {
		s.target.Destroy()
	}
	delete(h.sessions, id)
}

// Close releases every session.
func (h *Host) Close() {
	for id := range h.sessions {
		h.Release(id)
	}
	h.pending = nil
}
