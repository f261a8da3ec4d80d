// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/application/scene"
	"github.com/younwookim/framecore/internal/application/system"
	"github.com/younwookim/framecore/internal/domain/avatar"
	"github.com/younwookim/framecore/internal/domain/entity"
	"github.com/younwookim/framecore/internal/infrastructure/config"
	"github.com/younwookim/framecore/internal/render"
)

// Name is the scene's registry name.
const Name = "playing"

// PauseScene is the overlay pushed on the Pause action.
const PauseScene = "pause"

const avatarID entity.EntityID = 1

// Draw layers.
const (
	layerBackground = iota
	layerTiles
	layerAvatar
	layerAttack
)

// Materials registered by New.
const (
	matBackground render.MaterialID = "playing/background"
	matAvatar     render.MaterialID = "playing/avatar"
	matDucking    render.MaterialID = "playing/avatar-ducking"
	matAirborne   render.MaterialID = "playing/avatar-airborne"
	matAttack     render.MaterialID = "playing/attack"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorAvatar   = color.RGBA{100, 200, 100, 255}
	colorDucking  = color.RGBA{80, 160, 80, 255}
	colorAirborne = color.RGBA{140, 220, 140, 255}
	colorAttack   = color.RGBA{255, 215, 0, 255}
	colorHUD      = color.RGBA{60, 60, 60, 200}
)

var stateColors = map[avatar.State]color.RGBA{
	avatar.Standing: colorAvatar,
	avatar.Ducking:  colorDucking,
	avatar.Airborne: colorAirborne,
}

// Playing is the main gameplay scene
type Playing struct {
	scene.Base

	logger   *slog.Logger
	bindings *input.Bindings
	stage    *entity.Stage
	avatar   *avatar.Avatar
	physics  *system.PhysicsSystem
	tiles    map[entity.TileType]render.MaterialID

	screenW int
	screenH int

	// held movement keys, so either of two bound keys keeps moving
	held  map[ebiten.Key]input.Action
	steps int
}

// New builds the scene from cfg and registers its materials in lib.
func New(cfg *config.GameConfig, lib *render.Library, logger *slog.Logger) (*Playing, error) {
	if cfg == nil || cfg.Stage == nil || cfg.Physics == nil {
		return nil, fmt.Errorf("playing: incomplete config")
	}
	if len(cfg.Stage.Layers.Collision) == 0 || cfg.Stage.Size.TileSize <= 0 {
		return nil, fmt.Errorf("playing: stage %q has no tiles", cfg.Stage.ID)
	}
	if logger == nil {
		logger = slog.Default()
	}
	bindings := cfg.Bindings
	if bindings == nil {
		bindings = input.DefaultBindings()
	}

	stage := system.LoadStage(cfg.Stage)
	phys := cfg.Physics

	body := entity.NewBody(0, 0, phys.Avatar.Width, phys.Avatar.Height)
	body.SetPixelPos(stage.SpawnX, stage.SpawnY)
	body.FacingRight = true
	av := avatar.New(body, avatar.Tuning{
		MoveSpeed:      phys.Movement.MaxSpeed,
		AirControl:     phys.Movement.AirControl,
		JumpForce:      phys.Jump.Force,
		Friction:       phys.Movement.Friction,
		DuckFriction:   phys.Movement.DuckFriction,
		AttackDuration: phys.Avatar.AttackDuration,
	})
	av.OnTransition = func(from, to avatar.State, t avatar.Trigger) {
		logger.Debug("avatar transition", "from", from, "to", to, "trigger", t)
	}

	p := &Playing{
		Base:     scene.Base{SceneName: Name},
		logger:   logger,
		bindings: bindings,
		stage:    stage,
		avatar:   av,
		physics:  system.NewPhysicsSystem(phys, stage),
		tiles:    make(map[entity.TileType]render.MaterialID),
		screenW:  800,
		screenH:  600,
		held:     make(map[ebiten.Key]input.Action),
	}
	if cfg.Engine != nil {
		p.screenW = cfg.Engine.Display.ScreenWidth
		p.screenH = cfg.Engine.Display.ScreenHeight
	}

	bg := colorBG
	if c, err := config.ParseColor(cfg.Stage.Background.Color); err == nil {
		bg = c
	}
	lib.RegisterMaterial(matBackground, render.Material{Color: bg})
	lib.RegisterMaterial(matAvatar, render.Material{Color: colorAvatar})
	lib.RegisterMaterial(matDucking, render.Material{Color: colorDucking})
	lib.RegisterMaterial(matAirborne, render.Material{Color: colorAirborne})
	lib.RegisterMaterial(matAttack, render.Material{Color: colorAttack})
	for tt, c := range system.StagePalette(cfg.Stage) {
		id := render.MaterialID("playing/tile-" + tt.String())
		lib.RegisterMaterial(id, render.Material{Color: c})
		p.tiles[tt] = id
	}

	logger.Info("stage loaded", "stage", cfg.Stage.ID, "tiles", fmt.Sprintf("%dx%d", stage.Width, stage.Height))
	return p, nil
}

// Avatar returns the player character.
func (p *Playing) Avatar() *avatar.Avatar { return p.avatar }

// Stage returns the loaded stage.
func (p *Playing) Stage() *entity.Stage { return p.stage }

// Steps returns the number of fixed steps simulated.
func (p *Playing) Steps() int { return p.steps }

// OnDeactivate drops held keys; their releases go to the overlay.
func (p *Playing) OnDeactivate() {
	clear(p.held)
}

// HandleEvent turns bound keys into avatar intents and pauses on Pause
// (implements scene.Scene)
func (p *Playing) HandleEvent(e input.Event) {
	switch e.Kind {
	case input.Resize:
		if e.Width > 0 && e.Height > 0 {
			p.screenW, p.screenH = e.Width, e.Height
		}
		return
	case input.KeyUp:
		delete(p.held, e.Key)
	case input.KeyDown:
		if a, ok := p.bindings.Lookup(e.Key); ok && (a == input.MoveLeft || a == input.MoveRight) {
			p.held[e.Key] = a
		}
	}

	action := p.bindings.Resolve(e)
	switch action {
	case input.ActionNone, input.MoveLeft, input.MoveRight:
		return
	case input.Pause:
		if err := p.Nav.PushNamed(PauseScene); err != nil {
			p.logger.Error("pause failed", "error", err)
		}
		return
	}
	if intent, ok := system.IntentFor(avatarID, action); ok {
		system.ApplyIntent(p.avatar, intent)
	}
}

// moveDir returns -1, 0 or 1 from the held movement keys.
func (p *Playing) moveDir() int {
	left, right := false, false
	for _, a := range p.held {
		switch a {
		case input.MoveLeft:
			left = true
		case input.MoveRight:
			right = true
		}
	}
	switch {
	case left && !right:
		return -1
	case right && !left:
		return 1
	}
	return 0
}

// Update proceeds the game state by one fixed step (implements scene.Scene)
func (p *Playing) Update(dt float64) error {
	p.avatar.BeginStep()

	if dir := p.moveDir(); dir != 0 {
		system.ApplyIntent(p.avatar, system.MoveIntent{EntityID: avatarID, Dir: dir})
	}
	p.avatar.Update(dt)

	if p.physics.Update(&p.avatar.Body, dt) {
		p.avatar.Landed()
	}
	p.steps++
	return nil
}

// camera returns the top-left of the view centered on the avatar and
// clamped to the stage.
func (p *Playing) camera(ax, ay float64) (float64, float64) {
	camX := ax + float64(p.avatar.Width)/2 - float64(p.screenW)/2
	camY := ay + float64(p.avatar.Height)/2 - float64(p.screenH)/2

	stageW, stageH := p.stage.PixelSize()
	maxCamX := float64(stageW - p.screenW)
	maxCamY := float64(stageH - p.screenH)
	camX = math.Max(0, math.Min(camX, maxCamX))
	camY = math.Max(0, math.Min(camY, maxCamY))
	if maxCamX < 0 {
		camX = maxCamX / 2
	}
	if maxCamY < 0 {
		camY = maxCamY / 2
	}
	return math.Round(camX), math.Round(camY)
}

// Render describes the stage, avatar and HUD (implements scene.Scene)
func (p *Playing) Render(cb *render.CommandBuffer, alpha float64) {
	// A target set before the scene runs carries the current surface size.
	target := cb.TargetOr(p.screenW, p.screenH)
	if target.Width > 0 && target.Height > 0 {
		p.screenW, p.screenH = target.Width, target.Height
	}
	cb.SetRenderTarget(render.Backbuffer(p.screenW, p.screenH))

	ax, ay := p.avatar.Lerp(alpha)
	camX, camY := p.camera(ax, ay)
	cb.SetCamera(render.OrthoCamera(float32(camX), float32(camY), float32(p.screenW), float32(p.screenH)))

	stageW, stageH := p.stage.PixelSize()
	cb.AddDrawItem(rect(0, 0, float64(stageW), float64(stageH), matBackground, layerBackground))

	p.drawTiles(cb, int(camX), int(camY))
	p.drawAvatar(cb, ax, ay)
	p.drawHUD(cb)
}

func (p *Playing) drawTiles(cb *render.CommandBuffer, camX, camY int) {
	ts := p.stage.TileSize
	startTileX := max(0, camX/ts)
	startTileY := max(0, camY/ts)
	endTileX := min(p.stage.Width-1, (camX+p.screenW)/ts)
	endTileY := min(p.stage.Height-1, (camY+p.screenH)/ts)

	for ty := startTileY; ty <= endTileY; ty++ {
		for tx := startTileX; tx <= endTileX; tx++ {
			tile := p.stage.GetTile(tx, ty)
			if tile.Type == entity.TileEmpty {
				continue
			}
			mat, ok := p.tiles[tile.Type]
			if !ok {
				continue
			}
			cb.AddDrawItem(rect(float64(tx*ts), float64(ty*ts), float64(ts), float64(ts), mat, layerTiles))
		}
	}
}

func (p *Playing) drawAvatar(cb *render.CommandBuffer, ax, ay float64) {
	w, h := float64(p.avatar.Width), float64(p.avatar.Height)
	mat := matAvatar
	switch p.avatar.State() {
	case avatar.Ducking:
		mat = matDucking
		ay += h / 2
		h /= 2
	case avatar.Airborne:
		mat = matAirborne
	}
	cb.AddDrawItem(rect(ax, ay, w, h, mat, layerAvatar))

	if p.avatar.Attacking() {
		reach := w
		x := ax + w
		if !p.avatar.FacingRight {
			x = ax - reach
		}
		cb.AddDrawItem(rect(x, ay+h/4, reach, h/4, matAttack, layerAttack))
	}
}

// drawHUD shows the avatar state as a colored marker and one pip per
// attack, up to ten.
func (p *Playing) drawHUD(cb *render.CommandBuffer) {
	cb.AddUIItem(render.UIItem{X: 4, Y: 4, W: 60, H: 12, Color: colorHUD})
	cb.AddUIItem(render.UIItem{X: 6, Y: 6, W: 8, H: 8, Color: stateColors[p.avatar.State()], Layer: 1})
	for i := 0; i < min(p.avatar.Attacks(), 10); i++ {
		cb.AddUIItem(render.UIItem{X: float32(18 + i*4), Y: 8, W: 3, H: 4, Color: colorAttack, Layer: 1})
	}
}

// rect places the unit quad at (x, y) scaled to w by h pixels.
func rect(x, y, w, h float64, mat render.MaterialID, layer int) render.DrawItem {
	return render.DrawItem{
		Model:    mgl32.Translate3D(float32(x), float32(y), 0).Mul4(mgl32.Scale3D(float32(w), float32(h), 1)),
		Mesh:     render.MeshQuad,
		Material: mat,
		Layer:    layer,
	}
}
