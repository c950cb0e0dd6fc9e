package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/stealth/model"
)

type Action struct {
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

// slide glides t to p, replacing a glide still in flight.
func (g *Game) slide(t *Token, p model.Position) {
	tweens := t.MoveTo(p)
	if tweens == nil {
		return
	}
	for _, old := range t.active {
		delete(g.Tweens, old)
	}
	t.active = t.active[:0]
	for tw, a := range tweens {
		g.Tweens[tw] = a
		t.active = append(t.active, tw)
	}
}

// fadeInBanner shows the result panel over a short tween.
func (g *Game) fadeInBanner() {
	g.bannerAlpha = 0
	a := Action{onChange: func(v float32) { g.bannerAlpha = v }}
	a.addOnFinish(func() { g.bannerAlpha = 1 })
	g.Tweens[gween.New(0, 1, 0.4, ease.OutCubic)] = a
}

// updateTweens advances every tween by dt seconds and drops the finished.
func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			delete(g.Tweens, t)
		}
	}
}
