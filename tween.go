package main

import "github.com/tanema/gween"

// Action is what happens while a tween in Game.Tweens runs and after it ends.
type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

// next queues t to start once the current tween finishes and returns its
// action for further setup.
func (a *Action) next(t *gween.Tween) *Action {
	action := &Action{}
	if a.nexts == nil {
		a.nexts = make([]func(g *Game), 0)
	}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = *action
		})
	return action
}

// updateTweens advances every running tween by dt seconds.
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
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}
