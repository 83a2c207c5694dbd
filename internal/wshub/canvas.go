package wshub

import (
	"aimtrainer/internal/challenge"
	"fmt"
	"image/color"
)

// Canvas is a drawing surface mirrored in a player's browser. Draw calls
// are buffered and shipped as one frame message on Present.
type Canvas struct {
	hub      *Hub
	playerID string
	width    float64
	height   float64
	circles  []Circle
}

func NewCanvas(hub *Hub, playerID string, width, height float64) *Canvas {
	return &Canvas{hub: hub, playerID: playerID, width: width, height: height}
}

func (c *Canvas) Size() (float64, float64) {
	return c.width, c.height
}

func (c *Canvas) SetSize(width, height float64) {
	c.width, c.height = width, height
}

func (c *Canvas) Clear() {
	c.circles = c.circles[:0]
}

func (c *Canvas) FillCircle(x, y, r float64, col color.Color) {
	c.circles = append(c.circles, Circle{X: x, Y: y, R: r, Color: cssColor(col)})
}

// Present sends the buffered frame. It replaces any frame the connection
// has not written yet; each frame redraws everything.
func (c *Canvas) Present() {
	circles := make([]Circle, len(c.circles))
	copy(circles, c.circles)
	c.hub.Send(c.playerID, ServerMessage{
		Type:    MsgFrame,
		Width:   c.width,
		Height:  c.height,
		Circles: circles,
	})
}

func cssColor(col color.Color) string {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", n.R, n.G, n.B, float64(n.A)/255)
}

// View sends presentation values and screen changes to a player.
type View struct {
	hub      *Hub
	playerID string
}

var _ challenge.Display = (*View)(nil)

func NewView(hub *Hub, playerID string) *View {
	return &View{hub: hub, playerID: playerID}
}

func (v *View) screen(name string) {
	v.hub.Send(v.playerID, ServerMessage{Type: MsgScreen, Screen: name})
}

func (v *View) hud(field, text string) {
	v.hub.Send(v.playerID, ServerMessage{Type: MsgHUD, Field: field, Text: text})
}

func (v *View) ShowGame() {
	v.screen("game")
}

func (v *View) ShowHome() {
	v.screen("home")
}

func (v *View) ShowScore(score int) {
	v.hud("score", fmt.Sprintf("Score: %d", score))
}

func (v *View) ShowTime(seconds int) {
	v.hud("timer", fmt.Sprintf("Time: %ds", seconds))
}

func (v *View) ShowAccuracy(percent float64) {
	v.hud("accuracy", fmt.Sprintf("Accuracy: %.1f%%", percent))
}

func (v *View) ShowSpawnRate(perSecond float64) {
	v.hud("spawn-rate", fmt.Sprintf("Targets/sec: %.1f", perSecond))
}

func (v *View) ShowSummary(s challenge.Summary) {
	v.hud("final-score", fmt.Sprintf("Score: %d", s.Score))
	v.hud("final-accuracy", fmt.Sprintf("Accuracy: %.1f%%", s.Accuracy))
	v.screen("game-over")
}
