package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY    int
	LeftPressed       bool
	LeftJustPressed   bool
	LeftJustReleased  bool
	RightJustPressed  bool
	RightJustReleased bool

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	// Keys pressed this frame
	JustPressed map[ebiten.Key]bool
}

// bound keys
var watchedKeys = []ebiten.Key{
	ebiten.KeyA,     // artillery at cursor
	ebiten.KeyT,     // vehicle at cursor
	ebiten.KeySpace, // pause
	ebiten.KeyEscape,
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
		JustPressed:   make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.MouseX, s.MouseY = ebiten.CursorPosition()

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.RightJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)
	s.LeftPressed = leftDown

	for _, k := range watchedKeys {
		s.JustPressed[k] = inpututil.IsKeyJustPressed(k)
	}

	s.trackDrag(leftDown)
}

func (s *InputState) trackDrag(leftDown bool) {
	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if leftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	if !leftDown {
		s.Dragging = false
	}
}

// DragRect returns the selection rectangle if dragging
func (s *InputState) DragRect() (x1, y1, x2, y2 int, active bool) {
	if !s.Dragging {
		return 0, 0, 0, 0, false
	}
	return s.DragStartX, s.DragStartY, s.MouseX, s.MouseY, true
}

// Commands receives the player's intents in field coordinates
type Commands interface {
	Press(x, y float64)
	Release(x, y float64)
	Click(x, y float64)
	CallArtillery(x, y float64)
	SpawnVehicle(x, y float64)
}

// Controls receives session controls that are not part of the command log
type Controls interface {
	Toggle()
}

// Dispatch translates this frame's state into commands. The left button
// draws the selection box, the right button issues move orders.
func (s *InputState) Dispatch(cmds Commands, ctl Controls) {
	x, y := float64(s.MouseX), float64(s.MouseY)

	if s.LeftJustPressed {
		cmds.Press(x, y)
	}
	if s.LeftJustReleased {
		cmds.Release(x, y)
	}
	if s.RightJustPressed {
		cmds.Click(x, y)
	}
	if s.JustPressed[ebiten.KeyA] {
		cmds.CallArtillery(x, y)
	}
	if s.JustPressed[ebiten.KeyT] {
		cmds.SpawnVehicle(x, y)
	}
	if s.JustPressed[ebiten.KeySpace] && ctl != nil {
		ctl.Toggle()
	}
}
