package app

import (
	"context"
	"errors"
	"image"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vitrine/internal/app/popupctl"
	"github.com/llehouerou/vitrine/internal/gallery"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/imgproto"
	"github.com/llehouerou/vitrine/internal/ui/testutil"
	"github.com/llehouerou/vitrine/internal/ui/viewer"
	"github.com/llehouerou/vitrine/internal/ui/zoom"
)

type fakeLoader struct{}

func (fakeLoader) Load(_ context.Context, ref string) (*media.Asset, error) {
	if strings.Contains(ref, "bad") {
		return nil, errors.New("broken file")
	}
	return &media.Asset{
		Ref:   ref,
		Image: image.NewRGBA(image.Rect(0, 0, 40, 40)),
		Info:  media.Info{Name: ref, Width: 40, Height: 40, Bytes: 1000},
	}, nil
}

func newTestModel(images ...string) Model {
	return New(Options{
		Title:         "Oak chair",
		Images:        images,
		FrameInterval: time.Millisecond,
		Loader:        fakeLoader{},
	})
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// send updates m with msg and feeds back the messages the app sends to
// itself (widget actions, image loads, frame ticks) until none remain.
// It returns the other messages produced along the way.
func send(t *testing.T, m Model, msg tea.Msg) (Model, []tea.Msg) {
	t.Helper()
	var other []tea.Msg
	queue := []tea.Msg{msg}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 200, "message loop did not settle")
		next, cmd := m.Update(queue[0])
		queue = queue[1:]
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update should return Model")
		for _, out := range collect(cmd) {
			switch out.(type) {
			case action.Msg, media.LoadedMsg, viewer.FrameMsg:
				queue = append(queue, out)
			default:
				other = append(other, out)
			}
		}
	}
	return m, other
}

func resized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	m, _ = send(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

func activeIndex(t *testing.T, m Model) int {
	t.Helper()
	i, ok := m.Gallery().Active()
	require.True(t, ok, "expected an active slide")
	return i
}

func TestWindowSize_SelectsLayout(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  gallery.Mode
	}{
		{"wide is desktop", 120, gallery.ModeDesktop},
		{"breakpoint is desktop", 100, gallery.ModeDesktop},
		{"narrow is mobile", 99, gallery.ModeMobile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resized(t, newTestModel("a.png", "b.png"), tt.width, 30)

			require.NotNil(t, m.Gallery().Current())
			assert.Equal(t, tt.want, m.Gallery().Current().Mode())
			assert.Len(t, strings.Split(m.View(), "\n"), 30)
		})
	}
}

func TestView_BeforeSize(t *testing.T) {
	m := newTestModel("a.png")
	assert.Empty(t, m.View())
	assert.Nil(t, m.Gallery().Current())
}

func TestEmptyGallery(t *testing.T) {
	m := resized(t, newTestModel(), 120, 40)

	_, ok := m.Gallery().Active()
	assert.False(t, ok)
	assert.False(t, m.Gallery().SelectSlide(0))
	assert.Contains(t, testutil.StripANSI(m.View()), "No images")
	assert.Empty(t, m.desktop().strip.VisibleRefs())

	m, _ = send(t, m, testutil.Key("right"))
	_, ok = m.Gallery().Active()
	assert.False(t, ok)
}

func TestInitialIndex(t *testing.T) {
	m := New(Options{
		Images:       []string{"a.png", "b.png", "c.png"},
		InitialIndex: 2,
		Loader:       fakeLoader{},
	})
	m = resized(t, m, 120, 40)

	assert.Equal(t, 2, activeIndex(t, m))
	assert.Equal(t, 2, m.desktop().viewer.Index())
	assert.Equal(t, 2, m.desktop().strip.Active())
}

func TestLoadsActiveAndVisibleImages(t *testing.T) {
	m := resized(t, newTestModel("a.png", "b.png", "bad.png"), 120, 40)

	for _, ref := range []string{"a.png", "b.png"} {
		e := m.store.Get(ref)
		require.NotNil(t, e, ref)
		assert.NotNil(t, e.Asset, ref)
	}
	require.NotNil(t, m.store.Get("bad.png"))
	assert.Error(t, m.store.Get("bad.png").Err)
	assert.True(t, m.renderer.HasImage())
	assert.Equal(t, "a.png", m.renderer.Key())
}

func TestKeyNavigation_Viewer(t *testing.T) {
	m := resized(t, newTestModel("a.png", "b.png", "c.png"), 120, 40)

	m, other := send(t, m, testutil.Key("right"))
	assert.Equal(t, 1, activeIndex(t, m))
	assert.NotEmpty(t, other, "slide change updates the window title")

	m, _ = send(t, m, testutil.Key("G"))
	assert.Equal(t, 2, activeIndex(t, m))

	m, _ = send(t, m, testutil.Key("l"))
	assert.Equal(t, 2, activeIndex(t, m), "no wraparound")

	m, _ = send(t, m, testutil.Key("home"))
	assert.Equal(t, 0, activeIndex(t, m))
	assert.Equal(t, 0, m.desktop().strip.Active())
}

func TestKeyNavigation_StripFocus(t *testing.T) {
	m := resized(t, newTestModel("a.png", "b.png", "c.png"), 120, 40)

	m, _ = send(t, m, testutil.Key("tab"))
	require.Equal(t, FocusStrip, m.Focus())

	m, _ = send(t, m, testutil.Key("right"))
	m, _ = send(t, m, testutil.Key("right"))
	assert.Equal(t, 0, activeIndex(t, m), "moving the strip cursor does not select")
	assert.Equal(t, 2, m.desktop().strip.CursorPos())

	m, _ = send(t, m, testutil.Key("enter"))
	assert.Equal(t, 2, activeIndex(t, m))
	assert.Equal(t, 2, m.desktop().viewer.Index())
}

// Clicking thumbnail 2 shows it in the viewer with zoom inactive.
func TestClickThumbnail(t *testing.T) {
	m := resized(t, newTestModel("a.png", "b.png", "c.png"), 120, 40)
	strip := m.desktop().strip
	row, _ := strip.Origin()

	// panel border + two 12-cell slots with 1-cell gaps
	m, _ = send(t, m, testutil.Click(1+2*13+3, row+2))

	assert.Equal(t, 2, activeIndex(t, m))
	assert.Equal(t, 2, m.desktop().viewer.Index())
	assert.False(t, m.desktop().viewer.Overlay().Active())
	assert.Equal(t, FocusStrip, m.Focus())
}

func TestHoverZoom(t *testing.T) {
	m := resized(t, newTestModel("a.png", "b.png"), 120, 40)
	box := m.desktop().viewer.ImageBox()
	require.False(t, box.Empty())

	m, _ = send(t, m, testutil.Motion(box.Col+1, box.Row+box.Height/2))

	ov := m.desktop().viewer.Overlay()
	assert.True(t, ov.Active())
	assert.Equal(t, 2.0, ov.Scale())
	assert.Equal(t, zoom.MinPercent, ov.Origin().X)
	assert.Contains(t, m.renderer.Key(), "a.png#")

	m, _ = send(t, m, testutil.Key("right"))
	assert.False(t, m.desktop().viewer.Overlay().Active(), "slide change resets zoom")

	m, _ = send(t, m, testutil.Motion(box.Col+1, box.Row+1))
	m, _ = send(t, m, testutil.Motion(0, 0))
	assert.False(t, m.desktop().viewer.Overlay().Active(), "leaving the image resets zoom")
	assert.Equal(t, "b.png", m.renderer.Key())
}

func painted(msgs []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, msg := range msgs {
		if _, ok := msg.(paintedMsg); ok {
			out = append(out, msg)
		}
	}
	return out
}

var placementID = regexp.MustCompile(`a=p,i=(\d+)`)

// A message arriving between a zoom frame and the next paint must not drop
// the upload of the new crop.
func TestKittyUploadSurvivesUntilPainted(t *testing.T) {
	m := New(Options{
		Images:        []string{"a.png", "b.png"},
		FrameInterval: time.Millisecond,
		Loader:        fakeLoader{},
		Renderer:      imgproto.NewRenderer(imgproto.NewKitty(), nil),
	})
	m, acks := send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	box := m.desktop().viewer.ImageBox()
	require.False(t, box.Empty())

	m, more := send(t, m, testutil.Motion(box.Col+1, box.Row+1))
	acks = append(acks, more...)
	require.Contains(t, m.renderer.Key(), "a.png#", "the frame rendered a zoomed crop")

	next, cmd := m.Update(testutil.Motion(box.Col+2, box.Row+1))
	m = next.(Model)
	acks = append(acks, collect(cmd)...)

	view := m.View()
	match := placementID.FindStringSubmatch(view)
	require.NotNil(t, match, "view places the image")
	assert.Contains(t, view, "a=t,f=100,i="+match[1]+",", "upload for the placed image is still in the view")

	for _, ack := range painted(acks) {
		m, _ = send(t, m, ack)
	}
	view = m.View()
	assert.NotContains(t, view, "a=t,", "painted uploads are not repeated")
	assert.Contains(t, view, "a=p,i="+match[1]+",")
}

func TestFrameWithoutMotionSkipsRedraw(t *testing.T) {
	m := resized(t, newTestModel("a.png", "b.png"), 120, 40)
	box := m.desktop().viewer.ImageBox()
	m, _ = send(t, m, testutil.Motion(box.Col+1, box.Row+1))
	key := m.renderer.Key()

	next, cmd := m.Update(viewer.FrameMsg{})
	m = next.(Model)

	assert.Empty(t, painted(collect(cmd)), "no graphics queued")
	assert.Equal(t, key, m.renderer.Key())
}

func TestReloadRetriesFailedImages(t *testing.T) {
	m := resized(t, newTestModel("bad.png", "b.png"), 120, 40)
	require.Equal(t, []string{"bad.png"}, m.store.Failed())

	next, cmd := m.Update(testutil.Key("r"))
	m = next.(Model)

	var reloads []string
	for _, msg := range collect(cmd) {
		if loaded, ok := msg.(media.LoadedMsg); ok {
			reloads = append(reloads, loaded.Ref)
		}
	}
	assert.Equal(t, []string{"bad.png"}, reloads, "only the failed image is requested again")
	assert.True(t, m.store.Get("bad.png").Pending)
}

// Crossing the breakpoint downward unmounts the desktop widgets and resets
// the active index.
func TestLayoutSwitch(t *testing.T) {
	m := resized(t, newTestModel("a.png", "b.png", "c.png"), 120, 40)
	m, _ = send(t, m, testutil.Key("end"))
	require.Equal(t, 2, activeIndex(t, m))
	desktop := m.desktop()

	m = resized(t, m, 80, 40)

	assert.Equal(t, gallery.ModeMobile, m.Gallery().Current().Mode())
	assert.False(t, desktop.strip.Mounted())
	assert.False(t, desktop.viewer.Overlay().Active())
	assert.Equal(t, 0, activeIndex(t, m))
	assert.Equal(t, 0, m.mobile().strip.Index())

	m, _ = send(t, m, testutil.Key("right"))
	assert.Equal(t, 1, activeIndex(t, m))
	assert.Equal(t, 2, desktop.strip.Active(), "unmounted strip is no longer synced")

	m = resized(t, m, 90, 40)
	assert.Equal(t, 1, activeIndex(t, m), "resizing within a layout keeps the slide")
}

func TestMobileSwipe(t *testing.T) {
	m := resized(t, newTestModel("a.png", "b.png", "c.png"), 60, 20)

	m, _ = send(t, m, testutil.Click(50, 5))
	assert.Equal(t, 1, activeIndex(t, m))

	m, _ = send(t, m, testutil.Wheel(10, 5, tea.MouseButtonWheelLeft))
	assert.Equal(t, 0, activeIndex(t, m))

	assert.Contains(t, testutil.StripANSI(m.View()), "● ○ ○")
}

func TestHelpPopup(t *testing.T) {
	m := resized(t, newTestModel("a.png"), 120, 40)

	m, _ = send(t, m, testutil.Key("?"))
	require.Equal(t, popupctl.Help, m.popups.ActivePopup())
	assert.Contains(t, testutil.StripANSI(m.View()), "Focus next thumbnail")
	assert.False(t, m.renderer.HasImage(), "image is hidden under popups")

	m, _ = send(t, m, testutil.Key("right"))
	assert.Equal(t, 0, activeIndex(t, m), "keys go to the popup")

	m, _ = send(t, m, testutil.Key("esc"))
	assert.Equal(t, popupctl.None, m.popups.ActivePopup())
	assert.True(t, m.renderer.HasImage())
}

func TestQuit(t *testing.T) {
	m := resized(t, newTestModel("a.png"), 120, 40)

	_, other := send(t, m, testutil.Key("q"))

	assert.Contains(t, other, tea.Quit())
	assert.Error(t, m.ctx.Err(), "quitting cancels loads")
}

func TestWindowTitle(t *testing.T) {
	m := newTestModel("a.png", "b.png")
	assert.Equal(t, "Oak chair (1/2)", m.windowTitle())

	m = resized(t, m, 120, 40)
	m, _ = send(t, m, testutil.Key("right"))
	assert.Equal(t, "Oak chair (2/2)", m.windowTitle())

	assert.Equal(t, "vitrine", New(Options{}).windowTitle())
}

func TestEnforceHeight(t *testing.T) {
	assert.Equal(t, "a\nb\n", enforceHeight("a\nb", 3))
	assert.Equal(t, "a", enforceHeight("a\nb\nc", 1))
	assert.Equal(t, "a\nb", enforceHeight("a\nb", 2))
}

func TestFooterHints(t *testing.T) {
	m := resized(t, newTestModel("a.png"), 120, 40)
	assert.Contains(t, testutil.StripANSI(m.View()), "tab thumbnails · hover zoom · ? help · q quit")

	m, _ = send(t, m, testutil.Key("tab"))
	assert.Contains(t, testutil.StripANSI(m.View()), "tab viewer")

	m = resized(t, m, 60, 20)
	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "←/→ navigate · ? help · q quit")
	assert.NotContains(t, view, "hover zoom")
}
