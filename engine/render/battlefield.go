package render

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// Palette
var (
	groundColor   = color.RGBA{0x4a, 0x46, 0x3f, 255}
	speckColor    = color.RGBA{60, 55, 48, 255}
	trenchColor   = color.RGBA{0x5a, 0x3e, 0x2b, 255}
	breachedColor = color.RGBA{0x3a, 0x2a, 0x20, 255}
	sandbagColor  = color.RGBA{0x9c, 0x8b, 0x6b, 255}
	playerColor   = color.RGBA{0x55, 0x6b, 0x2f, 255}
	enemyColor    = color.RGBA{0x6b, 0x2f, 0x2f, 255}
	helmetColor   = color.RGBA{0x22, 0x22, 0x22, 255}
	suppressColor = color.RGBA{255, 255, 0, 255}
	selectColor   = color.RGBA{0, 255, 0, 200}
	bulletColor   = color.RGBA{240, 220, 140, 255}
	blastColor    = color.RGBA{255, 140, 30, 160}
	vehicleColor  = color.RGBA{0x44, 0x44, 0x44, 255}
	fogColor      = color.RGBA{0, 0, 0, 153}
)

const (
	groundSpeckles = 2500
	unitRadius     = 10
	smokeRadius    = 8
)

var _ core.Visualizer = (*Renderer)(nil)

// Renderer draws the battlefield with Ebitengine. It implements
// core.Visualizer; call Begin with the frame's target before RenderFrame.
type Renderer struct {
	Camera *Camera

	// Selected marks units drawn with a selection ring
	Selected func(id core.UnitID) bool

	// SmokeLife is the lifetime a fresh puff starts with, for fading
	SmokeLife int

	screen     *ebiten.Image
	ground     *ebiten.Image
	fog        *ebiten.Image
	hole       *ebiten.Image
	holeRadius float64
	face       text.Face
	seed       int64
}

// NewRenderer creates a renderer for a screenW x screenH field
func NewRenderer(screenW, screenH int, seed int64) *Renderer {
	return &Renderer{
		Camera:    NewCamera(screenW, screenH, rand.New(rand.NewSource(seed))),
		SmokeLife: 30,
		face:      text.NewGoXFace(basicfont.Face7x13),
		seed:      seed,
	}
}

// Begin sets the image the next frame is drawn on
func (r *Renderer) Begin(screen *ebiten.Image) {
	r.screen = screen
}

func (r *Renderer) ApplyScreenShake(magnitude float64) {
	r.Camera.Shake(magnitude)
}

func (r *Renderer) DrawGround() {
	if r.ground == nil {
		r.ground = ebiten.NewImageFromImage(groundTexture(r.Camera.ScreenW, r.Camera.ScreenH, r.seed))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(r.Camera.ShakeX, r.Camera.ShakeY)
	r.screen.DrawImage(r.ground, op)
}

// groundTexture paints the bare earth with faint 2x2 speckles
func groundTexture(w, h int, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(groundColor), image.Point{}, draw.Src)

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < groundSpeckles; i++ {
		x, y := rng.Intn(w), rng.Intn(h)
		c := speckColor
		c.A = uint8(rng.Float64() * 0.2 * 255)
		// premultiplied for draw.Over
		c.R = uint8(uint16(c.R) * uint16(c.A) / 255)
		c.G = uint8(uint16(c.G) * uint16(c.A) / 255)
		c.B = uint8(uint16(c.B) * uint16(c.A) / 255)
		draw.Draw(img, image.Rect(x, y, x+2, y+2), image.NewUniform(c), image.Point{}, draw.Over)
	}
	return img
}

func (r *Renderer) DrawStructures(structures []*core.Structure) {
	for _, s := range structures {
		x, y := r.Camera.WorldToScreen(core.Vec2{X: s.X, Y: s.Y})
		fill := trenchColor
		if s.Breached() {
			fill = breachedColor
		}
		vector.DrawFilledRect(r.screen, x, y, float32(s.W), float32(s.H), fill, false)
		for i := float32(0); i < float32(s.W); i += 20 {
			vector.DrawFilledRect(r.screen, x+i, y-10, 15, 10, sandbagColor, false)
		}
	}
}

func (r *Renderer) DrawUnit(u *core.Unit) {
	if !r.Camera.InView(u.Pos, unitRadius) {
		return
	}
	x, y := r.Camera.WorldToScreen(u.Pos)
	body := playerColor
	if u.Side == core.SideEnemy {
		body = enemyColor
	}
	if r.Selected != nil && r.Selected(u.ID) {
		vector.StrokeCircle(r.screen, x, y, 10, 1.5, selectColor, true)
	}
	vector.DrawFilledCircle(r.screen, x, y, 6, body, true)
	vector.DrawFilledRect(r.screen, x-6, y-6, 12, 4, helmetColor, false)
	if u.Weapon == core.WeaponMachine {
		vector.StrokeLine(r.screen, x, y, x+9, y-3, 2, helmetColor, false)
	}
	if u.Suppressed > 0 {
		vector.DrawFilledRect(r.screen, x-4, y-10, 8, 3, suppressColor, false)
	}
}

func (r *Renderer) DrawProjectiles(projectiles []*core.Projectile) {
	for _, p := range projectiles {
		if !r.Camera.InView(p.Pos, 0) {
			continue
		}
		x, y := r.Camera.WorldToScreen(p.Pos)
		dir, _ := p.Pos.Direction(p.Target)
		vector.StrokeLine(r.screen, x, y, x-float32(dir.X*4), y-float32(dir.Y*4), 1.5, bulletColor, false)
	}
}

func (r *Renderer) DrawExplosions(explosions []*core.Explosion) {
	for _, e := range explosions {
		x, y := r.Camera.WorldToScreen(e.Center)
		c := blastColor
		if e.MaxRadius > 0 {
			c.A = uint8(160 * (1 - e.Radius/e.MaxRadius/2))
		}
		vector.DrawFilledCircle(r.screen, x, y, float32(e.Radius), c, true)
	}
}

func (r *Renderer) DrawSmoke(smoke []*core.Smoke) {
	for _, s := range smoke {
		if !r.Camera.InView(s.Pos, smokeRadius) {
			continue
		}
		x, y := r.Camera.WorldToScreen(s.Pos)
		vector.DrawFilledCircle(r.screen, x, y, smokeRadius, smokeColor(s.Life, r.SmokeLife), true)
	}
}

// smokeColor fades a puff from opaque gray to clear over its life
func smokeColor(life, full int) color.RGBA {
	a := 1.0
	if full > 0 {
		a = float64(life) / float64(full)
	}
	if a > 1 {
		a = 1
	}
	if a < 0 {
		a = 0
	}
	v := uint8(100 * a)
	return color.RGBA{v, v, v, uint8(255 * a)}
}

func (r *Renderer) DrawVehicles(vehicles []*core.Vehicle) {
	for _, v := range vehicles {
		x, y := r.Camera.WorldToScreen(v.Pos)
		vector.DrawFilledRect(r.screen, x-15, y-10, 30, 20, vehicleColor, false)
		if v.State == core.VehicleSieging {
			vector.StrokeRect(r.screen, x-15, y-10, 30, 20, 1, suppressColor, false)
		}
	}
}

// ApplyFogOfWar dims the whole field and cuts a clear disc around each
// player unit
func (r *Renderer) ApplyFogOfWar(players []*core.Unit, visionRadius float64) {
	if r.fog == nil {
		r.fog = ebiten.NewImage(r.Camera.ScreenW, r.Camera.ScreenH)
	}
	if r.hole == nil || r.holeRadius != visionRadius {
		d := int(visionRadius*2) + 1
		r.hole = ebiten.NewImage(d, d)
		vector.DrawFilledCircle(r.hole, float32(visionRadius), float32(visionRadius), float32(visionRadius), color.White, true)
		r.holeRadius = visionRadius
	}

	r.fog.Fill(fogColor)
	for _, u := range players {
		if !u.Alive() {
			continue
		}
		op := &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationOut}
		op.GeoM.Translate(u.Pos.X-visionRadius, u.Pos.Y-visionRadius)
		r.fog.DrawImage(r.hole, op)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(r.Camera.ShakeX, r.Camera.ShakeY)
	r.screen.DrawImage(r.fog, op)
}

func (r *Renderer) DrawKills(kills int) {
	r.DrawText(fmt.Sprintf("Kills: %d", kills), 10, 30)
}

// DrawText prints a HUD line at a fixed screen position
func (r *Renderer) DrawText(s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = 16
	text.Draw(r.screen, s, r.face, op)
}

// DrawSelectionBox draws a selection rectangle on screen
func (r *Renderer) DrawSelectionBox(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if x2 == x1 || y2 == y1 {
		return
	}

	selColor := color.RGBA{0, 255, 0, 128}
	fillColor := color.RGBA{0, 255, 0, 30}

	vector.DrawFilledRect(r.screen, float32(x1), float32(y1), float32(x2-x1), float32(y2-y1), fillColor, false)

	vector.StrokeLine(r.screen, float32(x1), float32(y1), float32(x2), float32(y1), 1, selColor, false)
	vector.StrokeLine(r.screen, float32(x2), float32(y1), float32(x2), float32(y2), 1, selColor, false)
	vector.StrokeLine(r.screen, float32(x2), float32(y2), float32(x1), float32(y2), 1, selColor, false)
	vector.StrokeLine(r.screen, float32(x1), float32(y2), float32(x1), float32(y1), 1, selColor, false)
}
